// Package source reads the tabular spreadsheet exports and parses their rows
// into domain records.
package source

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook opens an xlsx export and returns the rows of its first sheet
// as strings, header row included. A missing file is reported as-is so
// callers can distinguish it with os.IsNotExist / errors.Is(fs.ErrNotExist).
func ReadWorkbook(path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}
