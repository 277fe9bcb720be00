// Package summary totals parsed statement transactions per goal.
package summary

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
)

// Totals are the sums for one goal. Trade totals are gross: sells and
// harvest legs count by absolute amount.
type Totals struct {
	Goal         string
	Transactions int
	Dividends    decimal.Decimal
	Reinvested   decimal.Decimal
	Bought       decimal.Decimal
	Sold         decimal.Decimal
	Fees         decimal.Decimal
	Harvested    decimal.Decimal
}

// Summarize returns totals for every goal, in the order given. Fee sells are
// counted once, through the fee transfer that sums them.
func Summarize(goals []model.Goal, txns []model.Transaction) []Totals {
	out := make([]Totals, len(goals))
	index := make(map[string]int, len(goals))
	for i, g := range goals {
		out[i].Goal = g.Key
		index[g.Key] = i
	}

	for _, t := range txns {
		i, ok := index[t.Goal]
		if !ok {
			continue
		}
		tot := &out[i]
		tot.Transactions++

		amount := t.Amount.Abs()
		switch {
		case t.Kind == model.KindDividendPayment:
			tot.Dividends = tot.Dividends.Add(amount)
		case t.Kind == model.KindDividendBuy:
			tot.Reinvested = tot.Reinvested.Add(amount)
		case t.Kind == model.KindBuy:
			tot.Bought = tot.Bought.Add(amount)
		case t.Kind == model.KindSell:
			tot.Sold = tot.Sold.Add(amount)
		case t.Kind == model.KindFeePay:
			tot.Fees = tot.Fees.Add(amount)
		case t.Kind.IsTaxLossHarvest():
			tot.Harvested = tot.Harvested.Add(amount)
		}
	}
	return out
}

// USD formats an amount as US dollars, "$1,234.56".
func USD(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.USD).Display()
}

// Write prints totals as an aligned table.
func Write(w io.Writer, totals []Totals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "GOAL\tTXNS\tDIVIDENDS\tREINVESTED\tBOUGHT\tSOLD\tFEES\tHARVESTED\t")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			t.Goal,
			t.Transactions,
			USD(t.Dividends),
			USD(t.Reinvested),
			USD(t.Bought),
			USD(t.Sold),
			USD(t.Fees),
			USD(t.Harvested),
		)
	}
	return tw.Flush()
}
