package pricing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadTable reads a tabular file into a header row and data rows. Extension
// picks the loader; anything unrecognized gets the spreadsheet loader as a
// last resort.
func loadTable(path string) ([]string, [][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	default:
		// .xls/.xlsx and everything else.
		return loadSpreadsheet(path)
	}
}

// loadSpreadsheet reads the first sheet of a workbook.
func loadSpreadsheet(path string) ([]string, [][]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return rows[0], rows[1:], nil
}

func loadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv has no rows")
	}
	return records[0], records[1:], nil
}
