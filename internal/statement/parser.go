package statement

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/betterqif/internal/model"
	"github.com/cleared-dev/betterqif/internal/tickers"
)

// sharePlaces is the precision of computed share counts.
const sharePlaces = 6

// shareTolerance is the largest accepted gap between computed and printed shares.
var shareTolerance = decimal.RequireFromString("0.001")

// Parser classifies single statement lines.
type Parser struct {
	dir    *tickers.Directory
	logger *slog.Logger
}

// NewParser returns a Parser resolving instruments through dir.
func NewParser(dir *tickers.Directory, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{dir: dir, logger: logger}
}

// ParseDividend parses a dividend payment line:
//
//	May 7 2015 MUB iShares National AMT-Free Muni Bond ETF $0.05
//
// The date is the first three tokens, the ticker the fourth, the amount the
// last, and everything between is the description.
func (p *Parser) ParseDividend(line model.Line) (model.Transaction, error) {
	if len(line) < 5 {
		return model.Transaction{}, fmt.Errorf("%w: dividend line has %d tokens", ErrNoMatch, len(line))
	}

	date, err := DateAtStart(line)
	if err != nil {
		return model.Transaction{}, err
	}

	tk, ok := p.dir.Lookup(line[3])
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w %q", ErrUnknownTicker, line[3])
	}

	last := line[len(line)-1]
	amount, err := parseDecimal(strings.TrimLeft(last, "-$"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: dividend amount %q", ErrNoMatch, last)
	}

	return model.Transaction{
		Date:        date,
		Ticker:      tk.Symbol,
		Kind:        model.KindDividendPayment,
		Amount:      amount,
		Description: strings.Join(line[4:len(line)-1], " "),
	}, nil
}

// Activity is a parsed activity line. Dated is false for continuation lines,
// whose date must come from the line that opened the group.
type Activity struct {
	Txn   model.Transaction
	Dated bool
}

// ParseActivity parses a trade, reinvestment or fee line. Two shapes occur:
//
//	Jul 12 2016 Dividend Reinvestment MUB $113.77 0.150 $17.02 76.690 $8,725.07
//	VTIP $49.54 0.204 $10.11 33.659 $1,667.46
//
// The columns after the ticker are share price, shares, amount, and running
// totals that are ignored. Shares are recomputed from amount and price; the
// printed count is only compared against.
func (p *Parser) ParseActivity(line model.Line) (Activity, error) {
	i, tk, ok := p.findTicker(line)
	if !ok {
		return Activity{}, fmt.Errorf("%w: no known ticker", ErrNoMatch)
	}

	date, dated, err := FindDate(line)
	if err != nil {
		return Activity{}, err
	}

	if i+3 >= len(line) {
		return Activity{}, fmt.Errorf("%w: %s has %d trailing columns", ErrNoMatch, tk.Symbol, len(line)-i-1)
	}

	price, err := parseDecimal(strings.TrimLeft(line[i+1], "$"))
	if err != nil {
		return Activity{}, fmt.Errorf("%w: share price %q", ErrNoMatch, line[i+1])
	}
	if price.IsZero() {
		return Activity{}, fmt.Errorf("%w: zero share price", ErrNoMatch)
	}

	amount, err := parseDecimal(strings.ReplaceAll(line[i+3], "$", ""))
	if err != nil {
		return Activity{}, fmt.Errorf("%w: amount %q", ErrNoMatch, line[i+3])
	}

	stated, err := parseDecimal(line[i+2])
	if err != nil {
		return Activity{}, fmt.Errorf("%w: shares %q", ErrNoMatch, line[i+2])
	}

	shares := amount.DivRound(price, sharePlaces)
	if shares.Sub(stated).Abs().GreaterThanOrEqual(shareTolerance) {
		p.logger.Warn("computed shares differ from statement",
			"ticker", tk.Symbol,
			"computed", shares.StringFixed(sharePlaces),
			"statement", stated.String(),
			"line", line.Text(),
		)
	}

	return Activity{
		Txn: model.Transaction{
			Date:         date,
			Ticker:       tk.Symbol,
			Kind:         classify(line, amount),
			Amount:       amount,
			SharePrice:   price,
			Shares:       shares,
			StatedShares: stated,
		},
		Dated: dated,
	}, nil
}

// findTicker returns the position of the first token naming a known ticker.
func (p *Parser) findTicker(line model.Line) (int, tickers.Ticker, bool) {
	for i, tok := range line {
		if tk, ok := p.dir.Lookup(tok); ok {
			return i, tk, true
		}
	}
	return -1, tickers.Ticker{}, false
}

// kindRule maps a line to a kind when match holds.
type kindRule struct {
	match func(text string, amount decimal.Decimal) bool
	kind  model.Kind
}

func contains(word string) func(string, decimal.Decimal) bool {
	return func(text string, _ decimal.Decimal) bool { return strings.Contains(text, word) }
}

// kindRules are evaluated in order and the first match wins. Text cues come
// before the sign test: a positive amount is a buy after a deposit but also
// the buy leg of a tax-loss harvest.
var kindRules = []kindRule{
	{contains("reinvestment"), model.KindDividendBuy},
	{contains("deposit"), model.KindBuy},
	{contains("fee"), model.KindFeeSell},
	{contains("harvesting"), model.KindTaxLossHarvest},
	{func(_ string, amount decimal.Decimal) bool { return amount.IsPositive() }, model.KindBuy},
	{func(string, decimal.Decimal) bool { return true }, model.KindSell},
}

func classify(line model.Line, amount decimal.Decimal) model.Kind {
	text := strings.ToLower(line.Text())
	for _, r := range kindRules {
		if r.match(text, amount) {
			return r.kind
		}
	}
	return model.KindSell
}

// parseDecimal parses a statement number, ignoring thousands separators.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
