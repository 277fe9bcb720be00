package model

import "github.com/shopspring/decimal"

// Holding is a position in one goal, from either the statement or a ledger export.
type Holding struct {
	Goal   string
	Ticker string
	Name   string
	Shares decimal.Decimal
}
