package statement

import (
	"strings"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

// holdingsTableHeader starts the holdings table inside a goal's monthly overview.
var holdingsTableHeader = []string{"type", "description", "ticker"}

// Holdings rows are a description, the ticker, and six value columns of which
// the share count is the second to last:
//
//	etfs vanguard total stock market etf vti 20.1% $2,500.00 $328.70 $115.10 24.576 $2,828.70
const (
	holdingsTrailing  = 6
	holdingsSharesCol = 2
)

// ParseHoldings extracts per-goal holdings from the monthly overview tables
// that follow the account summary (the first line starting with "total").
func ParseHoldings(lines []model.Line, goals []model.Goal, dir *tickers.Directory) []model.Holding {
	start := -1
	for i, l := range lines {
		if len(l) > 0 && strings.EqualFold(l[0], "total") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	compactHeaders := make([]string, len(goals))
	for i, g := range goals {
		compactHeaders[i] = strings.Join(g.HeaderTokens(), "")
	}

	var (
		goal       string
		inOverview bool
		inTable    bool
		parsedRow  bool
		holdings   []model.Holding
		index      = make(map[[2]string]int)
	)
	for _, raw := range lines[start:] {
		line := raw.Lower()
		compact := line.Compact()

		for i, h := range compactHeaders {
			if compact == h {
				goal = goals[i].Key
				inOverview, inTable, parsedRow = false, false, false
				break
			}
		}
		if goal != "" && strings.Contains(compact, "monthlyoverview") {
			inOverview = true
		}
		if inOverview && line.HasPrefix(holdingsTableHeader) {
			inTable = true
		}
		if goal == "" || !inOverview || !inTable {
			continue
		}

		h, ok := holdingRow(raw, dir)
		if !ok {
			// The first unparseable row is the rest of the column header; one
			// after data rows ends the table.
			if parsedRow {
				inTable, parsedRow = false, false
			}
			continue
		}
		parsedRow = true
		h.Goal = goal

		k := [2]string{goal, h.Ticker}
		if j, seen := index[k]; seen {
			holdings[j] = h
			continue
		}
		index[k] = len(holdings)
		holdings = append(holdings, h)
	}
	return holdings
}

func holdingRow(line model.Line, dir *tickers.Directory) (model.Holding, bool) {
	s := line
	if len(s) > 0 && strings.EqualFold(s[0], "etfs") {
		s = s[1:]
	}
	if len(s) <= holdingsTrailing {
		return model.Holding{}, false
	}
	shares, err := parseDecimal(s[len(s)-holdingsSharesCol])
	if err != nil {
		return model.Holding{}, false
	}

	desc := s[:len(s)-holdingsTrailing]
	sym := desc[len(desc)-1]
	ticker := strings.ToUpper(sym)
	if tk, ok := dir.Lookup(sym); ok {
		ticker = tk.Symbol
	}
	return model.Holding{
		Ticker: ticker,
		Name:   strings.Join(desc[:len(desc)-1], " "),
		Shares: shares,
	}, true
}
