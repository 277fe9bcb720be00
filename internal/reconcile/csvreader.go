package reconcile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVReader reads the CSV written by the Moneydance Extract Data extension.
type CSVReader struct{}

// Format returns the reader name.
func (*CSVReader) Format() string { return "csv" }

// Read parses the holdings table, which ends at the first blank line.
func (*CSVReader) Read(r io.Reader) ([]ExportRow, error) {
	// encoding/csv skips blank lines, so the table is cut off before parsing.
	var b strings.Builder
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			break
		}
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(b.String()))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return parseRows(records)
}
