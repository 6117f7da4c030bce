package domain

import "github.com/shopspring/decimal"

// PriceLevel is a single resting order level.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// OrderBook is a depth snapshot for one symbol.
type OrderBook struct {
	Symbol string       `json:"symbol"`
	Bids   []PriceLevel `json:"bids"`
	Asks   []PriceLevel `json:"asks"`
}

// Side identifies an order book side.
type Side string

const (
	// SideBid buy side.
	SideBid Side = "bid"
	// SideAsk sell side.
	SideAsk Side = "ask"
)

// String returns the string representation.
func (s Side) String() string {
	return string(s)
}

// RankedSymbol is a ranking transform output row.
type RankedSymbol struct {
	Symbol string          `json:"symbol"`
	Value  decimal.Decimal `json:"value"`
}

// NotionalEntry is the total resting order value on one side of a book.
type NotionalEntry struct {
	Symbol string          `json:"symbol"`
	Side   Side            `json:"side"`
	Value  decimal.Decimal `json:"value"`
}
