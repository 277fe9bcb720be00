package tickers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const (
	numFields = 2
	colSymbol = 0
	colName   = 1
)

// Header is the CSV header for ticker files.
const Header = "symbol,name"

// ReadTickers reads a symbol,name CSV with a header row.
func ReadTickers(r io.Reader) ([]Ticker, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tickers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var tickers []Ticker
	for i, rec := range records[1:] {
		t, err := UnmarshalTicker(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		tickers = append(tickers, t)
	}
	return tickers, nil
}

// WriteTickers writes tickers as CSV, including the header.
func WriteTickers(w io.Writer, tickers []Ticker) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range tickers {
		if err := cw.Write(MarshalTicker(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTicker converts a Ticker to a CSV row.
func MarshalTicker(t Ticker) []string {
	row := make([]string, numFields)
	row[colSymbol] = t.Symbol
	row[colName] = t.Name
	return row
}

// UnmarshalTicker converts a CSV row to a Ticker.
func UnmarshalTicker(record []string) (Ticker, error) {
	if len(record) != numFields {
		return Ticker{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	sym := strings.ToUpper(strings.TrimSpace(record[colSymbol]))
	if sym == "" {
		return Ticker{}, fmt.Errorf("empty symbol")
	}
	return Ticker{Symbol: sym, Name: record[colName]}, nil
}
