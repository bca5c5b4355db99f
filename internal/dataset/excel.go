package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadExcel parses an Excel (.xlsx) measurement file. The first sheet that
// yields numeric columns wins; lab exports usually carry a single sheet.
func LoadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening Excel file: %w", err)
	}
	defer f.Close()

	var lastErr error
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			lastErr = err
			continue
		}
		ds, err := fromRows(rows)
		if err != nil {
			lastErr = err
			continue
		}
		return ds, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("parsing Excel file %s: %w", path, lastErr)
	}
	return nil, fmt.Errorf("no sheets found in %s", path)
}
