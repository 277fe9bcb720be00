// Package reconcile compares ledger holdings exports against the holdings
// printed on a statement.
package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
)

// ExportRow is one security position from a ledger export.
type ExportRow struct {
	Account string
	Symbol  string
	Stock   string
	Shares  decimal.Decimal
}

// Export column headers.
const (
	ColSymbol  = "Symbol"
	ColStock   = "Stock"
	ColShares  = "Shares/Units"
	ColAccount = "Accounts"
)

// exportColumns holds the positions of the export columns in a header row.
type exportColumns struct {
	symbol, stock, shares, account int
}

func findColumns(header []string) (exportColumns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	get := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return i, nil
	}

	var (
		cols exportColumns
		err  error
	)
	if cols.symbol, err = get(ColSymbol); err != nil {
		return cols, err
	}
	if cols.stock, err = get(ColStock); err != nil {
		return cols, err
	}
	if cols.shares, err = get(ColShares); err != nil {
		return cols, err
	}
	if cols.account, err = get(ColAccount); err != nil {
		return cols, err
	}
	return cols, nil
}

// parseRows converts a header row and the data rows after it. Reading stops
// at the first blank row; exports append summary tables after one.
func parseRows(rows [][]string) ([]ExportRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("export is empty")
	}
	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, err
	}

	cell := func(rec []string, i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []ExportRow
	for n, rec := range rows[1:] {
		if blank(rec) {
			break
		}
		sym := cell(rec, cols.symbol)
		if sym == "" {
			continue
		}
		raw := cell(rec, cols.shares)
		shares, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing shares %q: %w", n+2, raw, err)
		}
		out = append(out, ExportRow{
			Account: cell(rec, cols.account),
			Symbol:  strings.ToUpper(sym),
			Stock:   cell(rec, cols.stock),
			Shares:  shares,
		})
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ReadExport reads a ledger export, choosing the reader by file extension.
func ReadExport(reg *Registry, path string) ([]ExportRow, error) {
	rd, err := reg.ReaderFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s export %s: %w", rd.Format(), filepath.Base(path), err)
	}
	return rows, nil
}

// GoalFor maps a ledger account name to the goal whose keyword it contains.
func GoalFor(account string, goals []model.Goal) (model.Goal, bool) {
	a := strings.ToLower(account)
	for _, g := range goals {
		if g.Keyword != "" && strings.Contains(a, strings.ToLower(g.Keyword)) {
			return g, true
		}
	}
	return model.Goal{}, false
}

// LedgerHoldings assigns export rows to goals. A later row for the same goal
// and ticker replaces an earlier one.
func LedgerHoldings(rows []ExportRow, goals []model.Goal) ([]model.Holding, error) {
	var holdings []model.Holding
	index := make(map[[2]string]int)
	for _, r := range rows {
		g, ok := GoalFor(r.Account, goals)
		if !ok {
			return nil, fmt.Errorf("account %q matches no goal", r.Account)
		}
		h := model.Holding{Goal: g.Key, Ticker: r.Symbol, Name: r.Stock, Shares: r.Shares}
		k := [2]string{g.Key, r.Symbol}
		if i, seen := index[k]; seen {
			holdings[i] = h
			continue
		}
		index[k] = len(holdings)
		holdings = append(holdings, h)
	}
	return holdings, nil
}
