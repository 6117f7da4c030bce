package gateway

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"spreadwatch/internal/domain"
)

// orderBookLimit is the cheapest request weight that still covers the 200
// levels per side the aggregation needs.
const orderBookLimit = 500

// Binance implements MarketData over the Binance spot REST API.
type Binance struct {
	client *binance.Client
}

// NewBinance creates a Binance market data gateway. Public market data
// endpoints need no API credentials.
func NewBinance(client *binance.Client) *Binance {
	return &Binance{client: client}
}

// ExchangeInfo fetches metadata for every listed symbol.
func (g *Binance) ExchangeInfo(ctx context.Context) ([]domain.SymbolInfo, error) {
	info, err := g.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch exchange info")
	}

	result := make([]domain.SymbolInfo, len(info.Symbols))
	for i, s := range info.Symbols {
		result[i] = domain.SymbolInfo{
			Symbol:     s.Symbol,
			BaseAsset:  s.BaseAsset,
			QuoteAsset: s.QuoteAsset,
		}
	}
	return result, nil
}

// Tickers24h fetches 24h statistics for every symbol. Numeric fields are
// kept as raw strings and parsed where they are consumed.
func (g *Binance) Tickers24h(ctx context.Context) ([]domain.Ticker, error) {
	stats, err := g.client.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch 24h tickers")
	}

	result := make([]domain.Ticker, len(stats))
	for i, s := range stats {
		result[i] = domain.Ticker{
			Symbol:             s.Symbol,
			PriceChange:        s.PriceChange,
			PriceChangePercent: s.PriceChangePercent,
			LastPrice:          s.LastPrice,
			Volume:             s.Volume,
			QuoteVolume:        s.QuoteVolume,
		}
	}
	return result, nil
}

// OrderBook fetches a depth snapshot for one symbol.
func (g *Binance) OrderBook(ctx context.Context, symbol string) (domain.OrderBook, error) {
	res, err := g.client.NewDepthService().Symbol(symbol).Limit(orderBookLimit).Do(ctx)
	if err != nil {
		return domain.OrderBook{}, errors.Wrapf(err, "failed to fetch order book for %s", symbol)
	}

	book := domain.OrderBook{Symbol: symbol}
	if book.Bids, err = parseLevels(res.Bids); err != nil {
		return domain.OrderBook{}, errors.Wrapf(err, "failed to parse bids for %s", symbol)
	}
	if book.Asks, err = parseLevels(res.Asks); err != nil {
		return domain.OrderBook{}, errors.Wrapf(err, "failed to parse asks for %s", symbol)
	}
	return book, nil
}

// BookTickers fetches the best bid/ask for every symbol.
func (g *Binance) BookTickers(ctx context.Context) ([]domain.BookTicker, error) {
	tickers, err := g.client.NewListBookTickersService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch book tickers")
	}

	result := make([]domain.BookTicker, len(tickers))
	for i, t := range tickers {
		bid, err := decimal.NewFromString(t.BidPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bid price for %s", t.Symbol)
		}
		ask, err := decimal.NewFromString(t.AskPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse ask price for %s", t.Symbol)
		}
		result[i] = domain.BookTicker{Symbol: t.Symbol, BidPrice: bid, AskPrice: ask}
	}
	return result, nil
}

func parseLevels(levels []common.PriceLevel) ([]domain.PriceLevel, error) {
	result := make([]domain.PriceLevel, len(levels))
	for i, l := range levels {
		price, err := decimal.NewFromString(l.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse price at level %d", i)
		}
		quantity, err := decimal.NewFromString(l.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse quantity at level %d", i)
		}
		result[i] = domain.PriceLevel{Price: price, Quantity: quantity}
	}
	return result, nil
}
