// Package qif renders parsed statement transactions as Quicken Interchange
// Format investment records, one document per goal.
package qif

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

const dateLayout = "01/02/2006"

// Record memos.
const (
	MemoReinvestment = "dividend reinvestment"
	MemoTaxLoss      = "tax loss harvesting"
	MemoFeeSell      = "advisory fee sell"
)

// The leading space before !Account is required by the importers this
// output is written for.
const headerTemplate = ` !Account
N%[1]s
D%[1]s
TInvst
^`

// EmitError identifies a transaction that cannot be written.
type EmitError struct {
	Index  int
	Txn    model.Transaction
	Reason string
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("transaction %d (%s %s %s %s goal %q): %s",
		e.Index,
		e.Txn.Date.Format("2006-01-02"),
		e.Txn.Kind,
		e.Txn.Ticker,
		e.Txn.Amount.String(),
		e.Txn.Goal,
		e.Reason,
	)
}

// Document is the QIF text for one goal: the account header followed by one
// record per transaction.
type Document struct {
	Goal    model.Goal
	Records []string
}

// String joins the header and records with newlines.
func (d Document) String() string {
	return strings.Join(d.Records, "\n")
}

// Emitter renders transactions for a fixed set of goals.
type Emitter struct {
	goals  []model.Goal
	index  map[string]int
	dir    *tickers.Directory
	prefix string
}

// NewEmitter creates an Emitter. prefix is prepended to goal names in the
// account headers, "Betterment" giving "Betterment Build Wealth".
func NewEmitter(goals []model.Goal, dir *tickers.Directory, prefix string) *Emitter {
	index := make(map[string]int, len(goals))
	for i, g := range goals {
		index[g.Key] = i
	}
	return &Emitter{goals: goals, index: index, dir: dir, prefix: prefix}
}

// AccountName returns the QIF account name for a goal.
func (e *Emitter) AccountName(g model.Goal) string {
	if e.prefix == "" {
		return g.Name
	}
	return e.prefix + " " + g.Name
}

// Render returns one Document per configured goal, in configuration order,
// including goals without transactions. The first transaction that cannot be
// written aborts rendering with an *EmitError.
func (e *Emitter) Render(txns []model.Transaction) ([]Document, error) {
	docs := make([]Document, len(e.goals))
	for i, g := range e.goals {
		docs[i] = Document{
			Goal:    g,
			Records: []string{fmt.Sprintf(headerTemplate, e.AccountName(g))},
		}
	}

	for n, txn := range txns {
		i, ok := e.index[txn.Goal]
		if !ok {
			return nil, &EmitError{Index: n, Txn: txn, Reason: "unknown goal"}
		}
		rec, err := e.Record(txn)
		if err != nil {
			return nil, &EmitError{Index: n, Txn: txn, Reason: err.Error()}
		}
		docs[i].Records = append(docs[i].Records, rec)
	}
	return docs, nil
}

// Record renders a single transaction. txn is not modified; tax-loss
// harvest kinds are resolved on a copy.
func (e *Emitter) Record(txn model.Transaction) (string, error) {
	switch txn.Kind {
	case model.KindDividendPayment:
		name, err := e.security(txn.Ticker)
		if err != nil {
			return "", err
		}
		return strings.Join([]string{
			"!Type:Invst",
			"D" + txn.Date.Format(dateLayout),
			"NDiv",
			"Y" + name,
			"T" + txn.Amount.StringFixed(2),
			"O0.00",
			"L[Investment:Dividends]",
			"^",
		}, "\n"), nil

	case model.KindFeePay:
		amount := txn.Amount.StringFixed(2)
		return strings.Join([]string{
			"!Type:Invst",
			"D" + txn.Date.Format(dateLayout),
			"NXOut",
			"PAdmin Fee",
			"T" + amount,
			"L[Bank Charge:Service Charges]",
			"$" + amount,
			"O0.00",
			"^",
		}, "\n"), nil
	}

	txn = Finalize(txn)
	action, ok := Action(txn.Kind)
	if !ok {
		return "", fmt.Errorf("kind %q is neither a buy nor a sell", txn.Kind)
	}
	name, err := e.security(txn.Ticker)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		"!Type:Invst",
		"D" + txn.Date.Format(dateLayout),
		"N" + action,
		"Y" + name,
		"I" + FormatPrice(txn.SharePrice),
		"Q" + txn.Shares.Abs().StringFixed(6),
		"T" + txn.Amount.Abs().StringFixed(2),
		"M" + txn.Memo,
		"O0.00",
		"^",
	}, "\n"), nil
}

func (e *Emitter) security(ticker string) (string, error) {
	if ticker == "" {
		return "", fmt.Errorf("missing ticker")
	}
	tk, ok := e.dir.Lookup(ticker)
	if !ok {
		return "", fmt.Errorf("unknown ticker %q", ticker)
	}
	return tk.Name, nil
}

// Finalize returns txn with a tax-loss harvest resolved to its buy or sell
// leg by share sign and the memo set for its kind.
func Finalize(txn model.Transaction) model.Transaction {
	if txn.Kind == model.KindTaxLossHarvest {
		if txn.Shares.IsNegative() {
			txn.Kind = model.KindTaxLossHarvestSell
		} else {
			txn.Kind = model.KindTaxLossHarvestBuy
		}
	}
	txn.Memo = Memo(txn.Kind)
	return txn
}

// Memo returns the record memo for a kind.
func Memo(k model.Kind) string {
	switch {
	case k == model.KindDividendBuy:
		return MemoReinvestment
	case k.IsTaxLossHarvest():
		return MemoTaxLoss
	case k == model.KindFeeSell:
		return MemoFeeSell
	default:
		return ""
	}
}

// Action returns the QIF action code for a trade kind.
func Action(k model.Kind) (string, bool) {
	switch k {
	case model.KindBuy, model.KindDividendBuy, model.KindTaxLossHarvestBuy:
		return "Buy", true
	case model.KindSell, model.KindFeeSell, model.KindTaxLossHarvestSell:
		return "Sell", true
	default:
		return "", false
	}
}

// FormatPrice prints a share price with at least two decimal places and no
// fewer than the statement printed.
func FormatPrice(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 2 {
		places = 2
	}
	return d.StringFixed(places)
}
