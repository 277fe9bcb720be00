package reconcile

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first sheet of a spreadsheet export with the same
// columns as the CSV export.
type XLSXReader struct{}

// Format returns the reader name.
func (*XLSXReader) Format() string { return "xlsx" }

// Read parses the holdings table on the first sheet.
func (*XLSXReader) Read(r io.Reader) ([]ExportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}
