// Package dataset parses tabular effluent measurement files (CSV or Excel)
// into named numeric columns for analysis.
package dataset

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Dataset holds the numeric columns of one measurement file. Each column is
// index-aligned with the source rows; missing or unparseable cells are
// encoded as NaN and stripped later by the analysis cleaner. Columns whose
// cells never parse as numbers (dates, remarks) are excluded entirely.
type Dataset struct {
	Columns map[string][]float64
	Names   []string // numeric column names in header order
	// Warnings collects non-fatal oddities found while parsing, such as
	// non-numeric cells inside an otherwise numeric column.
	Warnings []string
}

// Column returns the raw values for a named column.
func (d *Dataset) Column(name string) ([]float64, bool) {
	vals, ok := d.Columns[name]
	return vals, ok
}

// HasColumn reports whether the dataset contains the named numeric column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Columns[name]
	return ok
}

// DefaultSelection returns up to n numeric column names in header order,
// used when the caller does not name parameters explicitly.
func (d *Dataset) DefaultSelection(n int) []string {
	if n > len(d.Names) {
		n = len(d.Names)
	}
	sel := make([]string, n)
	copy(sel, d.Names[:n])
	return sel
}

// Load parses a measurement file, dispatching on the file extension.
// Supported formats are .csv and .xlsx.
func Load(path string) (*Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", ext)
	}
}

// Demo returns a small built-in dataset with ten daily samples of three
// effluent parameters, matching the shape of a typical lab export.
func Demo() *Dataset {
	return &Dataset{
		Columns: map[string][]float64{
			"Lead (Pb)":      {0.12, 0.15, 0.11, 0.20, 0.13, 0.45, 0.18, 0.12, 0.10, 0.15},
			"Manganese (Mn)": {0.65, 0.70, 0.55, 0.85, 0.60, 0.75, 0.68, 0.72, 0.58, 0.62},
			"Boron (B)":      {2.1, 2.3, 1.9, 2.5, 2.0, 2.2, 2.4, 2.1, 1.8, 2.2},
		},
		Names: []string{"Lead (Pb)", "Manganese (Mn)", "Boron (B)"},
	}
}

// fromRows converts a header row plus data rows into a Dataset. A column is
// kept as numeric when at least one of its cells parses as a float; within a
// kept column, blank and placeholder cells ("", "NA", "NaN", "null") become
// NaN silently, while other unparseable cells become NaN with a warning.
func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows (got %d rows)", len(rows))
	}

	header := rows[0]
	dataRows := rows[1:]

	ds := &Dataset{Columns: make(map[string][]float64)}

	for col, rawName := range header {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}

		values := make([]float64, len(dataRows))
		numeric := 0
		var colWarnings []string
		for row, record := range dataRows {
			cell := ""
			if col < len(record) {
				cell = strings.TrimSpace(record[col])
			}
			if isMissing(cell) {
				values[row] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				values[row] = math.NaN()
				colWarnings = append(colWarnings, fmt.Sprintf("column %q row %d: non-numeric value %q treated as missing", name, row+2, cell))
				continue
			}
			values[row] = v
			numeric++
		}

		if numeric == 0 {
			// Date/remark style column, not a measurement series.
			continue
		}
		if _, dup := ds.Columns[name]; dup {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("duplicate column %q ignored", name))
			continue
		}
		ds.Columns[name] = values
		ds.Names = append(ds.Names, name)
		ds.Warnings = append(ds.Warnings, colWarnings...)
	}

	if len(ds.Names) == 0 {
		return nil, fmt.Errorf("no numeric columns found")
	}
	return ds, nil
}

func isMissing(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}
