package qif

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/betterqif/internal/config"
	"github.com/cleared-dev/betterqif/internal/extract"
	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/statement"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEmitter() *Emitter {
	return NewEmitter(config.Default().Goals, tickers.NewDirectory(tickers.Default()), "Betterment")
}

// parseFixture runs the statement fixture through the parser with the
// default configuration.
func parseFixture(t *testing.T) []model.Transaction {
	t.Helper()
	data, err := os.ReadFile("../../testdata/statement.txt")
	require.NoError(t, err)

	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := statement.NewMachine(
		statement.NewParser(tickers.NewDirectory(tickers.Default()), logger),
		statement.MachineOptions{
			Goals:            cfg.Goals,
			DividendSections: cfg.Sections.Dividend,
			ActivitySections: cfg.Sections.Activity,
			ExitGoals:        cfg.Sections.ExitGoals,
		},
		logger,
	)
	return m.Parse(extract.Lines(string(data)))
}

func TestRender_Golden(t *testing.T) {
	docs, err := newTestEmitter().Render(parseFixture(t))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	base := filepath.Join(t.TempDir(), "statement")
	paths, err := WriteFiles(base, docs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base + "-build_wealth.qif",
		base + "-safety_net.qif",
		base + "-world_cup.qif",
	}, paths)

	got, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	want, err := os.ReadFile("../../testdata/statement-build_wealth.qif")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRender_SafetyNet(t *testing.T) {
	docs, err := newTestEmitter().Render(parseFixture(t))
	require.NoError(t, err)

	sn := docs[1]
	assert.Equal(t, "safety net", sn.Goal.Key)
	require.Len(t, sn.Records, 4)
	assert.Equal(t, " !Account\nNBetterment Safety Net\nDBetterment Safety Net\nTInvst\n^", sn.Records[0])
	assert.Contains(t, sn.Records[1], "\nNBuy\nYiShares Short Treasury Bond ETF\nI110.50\nQ0.904977\nT100.00\nM\n")
	assert.Contains(t, sn.Records[2], "\nNSell\n")
	assert.Contains(t, sn.Records[2], "\nQ0.004977\nT0.55\nMadvisory fee sell\n")
	assert.Contains(t, sn.Records[3], "\nT0.55\nL[Bank Charge:Service Charges]\n$0.55\n")
}

func TestRender_EmptyGoalHasHeader(t *testing.T) {
	docs, err := newTestEmitter().Render(nil)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, d := range docs {
		require.Len(t, d.Records, 1)
		assert.Contains(t, d.String(), "TInvst")
	}
	assert.Contains(t, docs[2].String(), "\nNBetterment World Cup\nDBetterment World Cup\n")
}

func TestRender_UnknownGoal(t *testing.T) {
	txns := []model.Transaction{
		{Date: date(2016, 7, 7), Kind: model.KindDividendPayment, Ticker: "VTI", Amount: dec("1.25"), Goal: "build wealth"},
		{Date: date(2016, 7, 7), Kind: model.KindDividendPayment, Ticker: "VTI", Amount: dec("1.25"), Goal: "retirement"},
	}
	_, err := newTestEmitter().Render(txns)
	require.Error(t, err)

	var ee *EmitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.Index)
	assert.Equal(t, "unknown goal", ee.Reason)
	assert.Contains(t, err.Error(), `goal "retirement"`)
}

func TestRender_MissingTicker(t *testing.T) {
	txns := []model.Transaction{
		{Date: date(2016, 7, 15), Kind: model.KindBuy, Amount: dec("10.00"), SharePrice: dec("5.00"), Shares: dec("2"), Goal: "safety net"},
	}
	_, err := newTestEmitter().Render(txns)
	var ee *EmitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "missing ticker", ee.Reason)
}

func TestRecord_NeitherBuyNorSell(t *testing.T) {
	_, err := newTestEmitter().Record(model.Transaction{Kind: "transfer", Ticker: "VTI", Goal: "build wealth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a buy nor a sell")
}

func TestRecord_DoesNotMutate(t *testing.T) {
	txn := model.Transaction{
		Date:       date(2016, 8, 3),
		Kind:       model.KindTaxLossHarvest,
		Ticker:     "ITOT",
		Amount:     dec("-1000.00"),
		SharePrice: dec("50.00"),
		Shares:     dec("-20"),
		Goal:       "build wealth",
	}
	rec, err := newTestEmitter().Record(txn)
	require.NoError(t, err)
	assert.Contains(t, rec, "\nNSell\n")
	assert.Equal(t, model.KindTaxLossHarvest, txn.Kind)
	assert.Empty(t, txn.Memo)
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		kind   model.Kind
		shares string
		want   model.Kind
		memo   string
	}{
		{model.KindTaxLossHarvest, "-20", model.KindTaxLossHarvestSell, MemoTaxLoss},
		{model.KindTaxLossHarvest, "10", model.KindTaxLossHarvestBuy, MemoTaxLoss},
		{model.KindTaxLossHarvest, "0", model.KindTaxLossHarvestBuy, MemoTaxLoss},
		{model.KindDividendBuy, "1", model.KindDividendBuy, MemoReinvestment},
		{model.KindFeeSell, "-1", model.KindFeeSell, MemoFeeSell},
		{model.KindBuy, "1", model.KindBuy, ""},
		{model.KindSell, "-1", model.KindSell, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.shares, func(t *testing.T) {
			got := Finalize(model.Transaction{Kind: tt.kind, Shares: dec(tt.shares)})
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.memo, got.Memo)
		})
	}
}

func TestAction(t *testing.T) {
	for _, k := range []model.Kind{model.KindBuy, model.KindDividendBuy, model.KindTaxLossHarvestBuy} {
		a, ok := Action(k)
		assert.True(t, ok)
		assert.Equal(t, "Buy", a, k)
	}
	for _, k := range []model.Kind{model.KindSell, model.KindFeeSell, model.KindTaxLossHarvestSell} {
		a, ok := Action(k)
		assert.True(t, ok)
		assert.Equal(t, "Sell", a, k)
	}
	_, ok := Action(model.KindTaxLossHarvest)
	assert.False(t, ok, "unresolved harvests have no action")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "113.77", FormatPrice(dec("113.77")))
	assert.Equal(t, "110.00", FormatPrice(dec("110")))
	assert.Equal(t, "110.50", FormatPrice(dec("110.5")))
	assert.Equal(t, "49.5412", FormatPrice(dec("49.5412")))
}
