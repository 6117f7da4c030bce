package domain

import "github.com/shopspring/decimal"

// BookTicker is the best bid/ask for one symbol.
type BookTicker struct {
	Symbol   string          `json:"symbol"`
	BidPrice decimal.Decimal `json:"bidPrice"`
	AskPrice decimal.Decimal `json:"askPrice"`
}

// SpreadObservation is the ask−bid spread for one symbol at one poll.
// Delta is the absolute change from the previous poll; it is only
// meaningful on observations produced by the delta computation.
type SpreadObservation struct {
	Symbol string          `json:"symbol"`
	Value  decimal.Decimal `json:"value"`
	Delta  decimal.Decimal `json:"delta"`
}
