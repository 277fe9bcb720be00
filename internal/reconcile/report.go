package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/betterqif/internal/model"
)

// Header is the CSV header of the comparison report.
const Header = "Goal,Ticker,Ledger Shares,Statement Shares,Difference,Stock Name"

// HoldingsHeader heads each goal block of the holdings listing.
const HoldingsHeader = "Ticker,Name,Shares"

const (
	numFields    = 6
	colGoal      = 0
	colTicker    = 1
	colLedger    = 2
	colStatement = 3
	colDiff      = 4
	colName      = 5
)

// MarshalRow converts a Row to a CSV record.
func MarshalRow(r Row) []string {
	rec := make([]string, numFields)
	rec[colGoal] = r.Goal
	rec[colTicker] = r.Ticker
	rec[colLedger] = r.Ledger.String()
	rec[colStatement] = r.Statement.String()
	rec[colDiff] = r.Diff.String()
	rec[colName] = r.Name
	return rec
}

// WriteReport writes the comparison report as CSV.
func WriteReport(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %s/%s: %w", r.Goal, r.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHoldings writes statement holdings as one block per goal:
//
//	GOAL: build wealth
//	Ticker,Name,Shares
//	VTI,Vanguard Total Stock Market ETF,39.888
func WriteHoldings(w io.Writer, holdings []model.Holding) error {
	cw := csv.NewWriter(w)
	goal := ""
	for i, h := range holdings {
		if i == 0 || h.Goal != goal {
			goal = h.Goal
			if err := cw.Write([]string{"GOAL: " + goal}); err != nil {
				return err
			}
			if err := cw.Write(strings.Split(HoldingsHeader, ",")); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{h.Ticker, h.Name, h.Shares.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
