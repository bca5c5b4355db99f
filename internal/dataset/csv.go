package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadCSV parses a CSV measurement file with a header row.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	ds, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV file %s: %w", path, err)
	}
	return ds, nil
}

// ParseCSV parses CSV content from a reader. The first record is the header;
// short records are padded with missing cells rather than rejected.
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV records: %w", err)
	}
	return fromRows(rows)
}
