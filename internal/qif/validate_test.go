package qif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/statement"
)

func TestValidate_Fixture(t *testing.T) {
	errs := newTestEmitter().Validate(parseFixture(t))
	assert.Empty(t, errs)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		txn   model.Transaction
		rule  string
		fatal bool
	}{
		{
			name:  "unknown goal",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: model.KindBuy, Ticker: "VTI", Amount: dec("1.00"), Goal: "retirement"},
			rule:  RuleGoal,
			fatal: true,
		},
		{
			name:  "missing date",
			txn:   model.Transaction{Kind: model.KindBuy, Ticker: "VTI", Amount: dec("1.00"), Goal: "build wealth"},
			rule:  RuleDate,
			fatal: true,
		},
		{
			name:  "invalid kind",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: "transfer", Ticker: "VTI", Amount: dec("1.00"), Goal: "build wealth"},
			rule:  RuleKind,
			fatal: true,
		},
		{
			name:  "unknown ticker",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: model.KindBuy, Ticker: "XYZ", Amount: dec("1.00"), Goal: "build wealth"},
			rule:  RuleTicker,
			fatal: true,
		},
		{
			name:  "fee transfer with ticker",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: model.KindFeePay, Ticker: "VTI", Amount: dec("1.00"), Goal: "build wealth"},
			rule:  RuleFeePay,
		},
		{
			name:  "negative fee transfer",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: model.KindFeePay, Amount: dec("-1.00"), Goal: "build wealth"},
			rule:  RuleFeePay,
		},
		{
			name:  "fractional cents",
			txn:   model.Transaction{Date: date(2016, 7, 7), Kind: model.KindBuy, Ticker: "VTI", Amount: dec("1.005"), Goal: "build wealth"},
			rule:  RuleDecimal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := newTestEmitter().Validate([]model.Transaction{tt.txn})
			require.Len(t, errs, 1)
			assert.Equal(t, tt.rule, errs[0].Rule)
			assert.Equal(t, 0, errs[0].Index)
			assert.Contains(t, errs[0].Error(), "transaction 0 ["+tt.rule+"]")
			assert.Equal(t, tt.fatal, errs[0].Fatal())
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	errs := newTestEmitter().Validate([]model.Transaction{
		{Kind: "transfer", Goal: "retirement", Amount: dec("1.00")},
	})
	rules := make([]string, len(errs))
	for i, e := range errs {
		rules[i] = e.Rule
	}
	assert.Equal(t, []string{RuleGoal, RuleDate, RuleKind, RuleTicker}, rules)
}

func TestValidate_ZeroFeeDayStillRenders(t *testing.T) {
	sells := []model.Transaction{
		{Date: date(2016, 7, 29), Kind: model.KindFeeSell, Ticker: "VTI", SharePrice: dec("100.00"), Amount: dec("-3.00"), Shares: dec("-0.03"), Goal: "build wealth"},
		{Date: date(2016, 7, 29), Kind: model.KindFeeSell, Ticker: "VTV", SharePrice: dec("100.00"), Amount: dec("3.00"), Shares: dec("0.03"), Goal: "build wealth"},
	}
	txns := append(sells, statement.AggregateFees(sells)...)
	require.Len(t, txns, 3)

	em := newTestEmitter()
	errs := em.Validate(txns)
	require.Len(t, errs, 1)
	assert.Equal(t, RuleFeePay, errs[0].Rule)
	assert.Equal(t, 2, errs[0].Index)
	assert.False(t, errs[0].Fatal())

	docs, err := em.Render(txns)
	require.NoError(t, err)
	assert.Len(t, docs[0].Records, 4)
	assert.Contains(t, docs[0].Records[3], "\nT0.00\n")
}
