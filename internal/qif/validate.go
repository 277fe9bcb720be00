package qif

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Index       int
	Rule        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transaction %d [%s]: %s", e.Index, e.Rule, e.Description)
}

// Validation rules.
const (
	RuleGoal    = "goal"
	RuleDate    = "date"
	RuleKind    = "kind"
	RuleTicker  = "ticker"
	RuleFeePay  = "fee-pay"
	RuleDecimal = "decimal"
)

// Fatal reports whether the violation stops records from being written.
// Fee transfer and decimal violations still render and are only warnings.
func (e ValidationError) Fatal() bool {
	switch e.Rule {
	case RuleGoal, RuleDate, RuleKind, RuleTicker:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Validate checks every transaction against the invariants the records rely
// on and returns all violations.
func (e *Emitter) Validate(txns []model.Transaction) []ValidationError {
	var errs []ValidationError
	add := func(i int, rule, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Rule: rule, Description: fmt.Sprintf(format, args...)})
	}

	for i, t := range txns {
		if _, ok := e.index[t.Goal]; !ok {
			add(i, RuleGoal, "unknown goal %q", t.Goal)
		}
		if t.Date.IsZero() {
			add(i, RuleDate, "missing date")
		}
		if !t.Kind.Valid() {
			add(i, RuleKind, "invalid kind %q", t.Kind)
		}

		if t.Kind == model.KindFeePay {
			if t.Ticker != "" {
				add(i, RuleFeePay, "fee transfer has ticker %q", t.Ticker)
			}
			if !t.Amount.IsPositive() {
				add(i, RuleFeePay, "fee transfer amount %s is not positive", t.Amount.StringFixed(2))
			}
		} else if !e.dir.Has(t.Ticker) {
			add(i, RuleTicker, "unknown ticker %q", t.Ticker)
		}

		// Statement amounts are whole cents.
		if !t.Amount.Mul(hundred).Equal(t.Amount.Mul(hundred).Floor()) {
			add(i, RuleDecimal, "amount %s has more than 2 decimal places", t.Amount)
		}
	}
	return errs
}
