package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
)

// AggregateFees sums fee sells per goal and date and returns one fee
// transfer for each, in order of first appearance. Existing fee transfers in
// txns are ignored, so calling it again on the same list gives the same sums.
func AggregateFees(txns []model.Transaction) []model.Transaction {
	type key struct {
		goal string
		date time.Time
	}

	sums := make(map[key]decimal.Decimal)
	var order []key
	for _, t := range txns {
		if t.Kind != model.KindFeeSell {
			continue
		}
		k := key{goal: t.Goal, date: t.Date}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(t.Amount)
	}

	fees := make([]model.Transaction, 0, len(order))
	for _, k := range order {
		fees = append(fees, model.Transaction{
			Date:   k.date,
			Kind:   model.KindFeePay,
			Amount: sums[k].Abs(),
			Goal:   k.goal,
		})
	}
	return fees
}
