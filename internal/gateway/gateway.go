// Package gateway retrieves public market data from the exchange REST API.
package gateway

import (
	"context"

	"spreadwatch/internal/domain"
)

// MarketData is the read-only surface of the exchange market data API.
type MarketData interface {
	// ExchangeInfo returns metadata for every listed symbol.
	ExchangeInfo(ctx context.Context) ([]domain.SymbolInfo, error)
	// Tickers24h returns rolling 24h statistics for every symbol.
	Tickers24h(ctx context.Context) ([]domain.Ticker, error)
	// OrderBook returns a depth snapshot for one symbol.
	OrderBook(ctx context.Context, symbol string) (domain.OrderBook, error)
	// BookTickers returns the best bid/ask for every symbol.
	BookTickers(ctx context.Context) ([]domain.BookTicker, error)
}
