package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a parsed statement transaction.
type Kind string

const (
	KindDividendPayment    Kind = "dividend-payment"
	KindDividendBuy        Kind = "dividend-buy"
	KindBuy                Kind = "buy"
	KindSell               Kind = "sell"
	KindFeeSell            Kind = "fee-sell"
	KindFeePay             Kind = "fee-pay"
	KindTaxLossHarvest     Kind = "tlh"
	KindTaxLossHarvestBuy  Kind = "tlh-buy"
	KindTaxLossHarvestSell Kind = "tlh-sell"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{
	KindDividendPayment,
	KindDividendBuy,
	KindBuy,
	KindSell,
	KindFeeSell,
	KindFeePay,
	KindTaxLossHarvest,
	KindTaxLossHarvestBuy,
	KindTaxLossHarvestSell,
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// IsTaxLossHarvest reports whether k belongs to a tax-loss-harvest sequence.
func (k Kind) IsTaxLossHarvest() bool {
	return k == KindTaxLossHarvest || k == KindTaxLossHarvestBuy || k == KindTaxLossHarvestSell
}

// Transaction is one normalized statement record.
type Transaction struct {
	Date         time.Time
	Ticker       string // canonical upper-case symbol; empty for fee-pay
	Kind         Kind
	Amount       decimal.Decimal // signed as parsed
	SharePrice   decimal.Decimal
	Shares       decimal.Decimal // Amount / SharePrice, 6 places
	StatedShares decimal.Decimal // share count printed on the statement
	Goal         string
	Description  string
	Memo         string
}
