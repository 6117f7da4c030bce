package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"spreadwatch/internal/domain"
	"spreadwatch/pkg/cache"
)

const (
	keyExchangeInfo = "exchange_info"
	keyTickers24h   = "ticker_24h"
	keyOrderBook    = "order_book"
	keyBookTickers  = "book_ticker"
)

// Cached wraps a MarketData gateway with TTL caching of responses. Book
// tickers use their own short TTL since they drive the polling cadence;
// everything else shares the slow TTL.
type Cached struct {
	next    MarketData
	store   cache.Store
	ttl     time.Duration
	bookTTL time.Duration
}

// NewCached creates a caching gateway decorator.
func NewCached(next MarketData, store cache.Store, ttl, bookTTL time.Duration) *Cached {
	return &Cached{next: next, store: store, ttl: ttl, bookTTL: bookTTL}
}

// ExchangeInfo implements MarketData.
func (c *Cached) ExchangeInfo(ctx context.Context) ([]domain.SymbolInfo, error) {
	var infos []domain.SymbolInfo
	if c.load(keyExchangeInfo, &infos) {
		return infos, nil
	}

	infos, err := c.next.ExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}
	return infos, c.put(keyExchangeInfo, infos, c.ttl)
}

// Tickers24h implements MarketData.
func (c *Cached) Tickers24h(ctx context.Context) ([]domain.Ticker, error) {
	var tickers []domain.Ticker
	if c.load(keyTickers24h, &tickers) {
		return tickers, nil
	}

	tickers, err := c.next.Tickers24h(ctx)
	if err != nil {
		return nil, err
	}
	return tickers, c.put(keyTickers24h, tickers, c.ttl)
}

// OrderBook implements MarketData. Snapshots are cached per symbol.
func (c *Cached) OrderBook(ctx context.Context, symbol string) (domain.OrderBook, error) {
	key := keyOrderBook + "_" + symbol

	var book domain.OrderBook
	if c.load(key, &book) {
		return book, nil
	}

	book, err := c.next.OrderBook(ctx, symbol)
	if err != nil {
		return domain.OrderBook{}, err
	}
	return book, c.put(key, book, c.ttl)
}

// BookTickers implements MarketData.
func (c *Cached) BookTickers(ctx context.Context) ([]domain.BookTicker, error) {
	var tickers []domain.BookTicker
	if c.load(keyBookTickers, &tickers) {
		return tickers, nil
	}

	tickers, err := c.next.BookTickers(ctx)
	if err != nil {
		return nil, err
	}
	return tickers, c.put(keyBookTickers, tickers, c.bookTTL)
}

func (c *Cached) load(key string, dst any) bool {
	raw, ok := c.store.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *Cached) put(key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode cache entry %s", key)
	}
	if err := c.store.Set(key, raw, ttl); err != nil {
		return errors.Wrapf(err, "failed to store cache entry %s", key)
	}
	return nil
}
