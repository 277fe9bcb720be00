package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

// Row is the share comparison for one goal and ticker.
type Row struct {
	Goal      string
	Ticker    string
	Ledger    decimal.Decimal
	Statement decimal.Decimal
	Diff      decimal.Decimal // Ledger - Statement
	Name      string
}

// Compare matches ledger holdings against statement holdings for every goal
// in the ledger, in order of first appearance. A ticker missing on one side
// counts as zero shares there. Within a goal, rows are sorted by descending
// absolute difference, then descending ticker.
func Compare(ledger, stmt []model.Holding, dir *tickers.Directory) []Row {
	type side struct {
		ledger, stmt       decimal.Decimal
		ledgerName, stName string
	}

	var goals []string
	byGoal := make(map[string]map[string]*side)
	get := func(goal, ticker string) *side {
		m := byGoal[goal]
		if m == nil {
			m = make(map[string]*side)
			byGoal[goal] = m
		}
		s := m[ticker]
		if s == nil {
			s = &side{}
			m[ticker] = s
		}
		return s
	}

	for _, h := range ledger {
		if _, seen := byGoal[h.Goal]; !seen {
			goals = append(goals, h.Goal)
		}
		s := get(h.Goal, h.Ticker)
		s.ledger = h.Shares
		s.ledgerName = h.Name
	}
	for _, h := range stmt {
		if _, inLedger := byGoal[h.Goal]; !inLedger {
			continue
		}
		s := get(h.Goal, h.Ticker)
		s.stmt = h.Shares
		s.stName = h.Name
	}

	var rows []Row
	for _, g := range goals {
		start := len(rows)
		for ticker, s := range byGoal[g] {
			name := dir.Name(ticker)
			if name == "" {
				name = s.ledgerName
			}
			if name == "" {
				name = s.stName
			}
			rows = append(rows, Row{
				Goal:      g,
				Ticker:    ticker,
				Ledger:    s.ledger,
				Statement: s.stmt,
				Diff:      s.ledger.Sub(s.stmt),
				Name:      name,
			})
		}
		sortRows(rows[start:])
	}
	return rows
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := rows[i].Diff.Abs(), rows[j].Diff.Abs()
		if c := ai.Cmp(aj); c != 0 {
			return c > 0
		}
		return rows[i].Ticker > rows[j].Ticker
	})
}
