// Package notional computes total resting order value per book side.
package notional

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"spreadwatch/internal/domain"
	"spreadwatch/internal/gateway"
)

// maxLevels caps how many best-priced levels per side enter the sum.
const maxLevels = 200

// Aggregator sums order book notional value for a set of symbols.
type Aggregator struct {
	gateway gateway.MarketData
}

// NewAggregator creates a notional value aggregator.
func NewAggregator(gw gateway.MarketData) *Aggregator {
	return &Aggregator{gateway: gw}
}

// Aggregate fetches the order book of every symbol and returns a bid entry
// followed by an ask entry per symbol, in input order. Each side is sorted
// and capped independently from its own level list.
func (a *Aggregator) Aggregate(ctx context.Context, symbols []string) ([]domain.NotionalEntry, error) {
	entries := make([]domain.NotionalEntry, 0, len(symbols)*2)
	for _, symbol := range symbols {
		book, err := a.gateway.OrderBook(ctx, symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to aggregate notional value for %s", symbol)
		}

		entries = append(entries,
			domain.NotionalEntry{Symbol: symbol, Side: domain.SideBid, Value: sideValue(book.Bids)},
			domain.NotionalEntry{Symbol: symbol, Side: domain.SideAsk, Value: sideValue(book.Asks)},
		)
	}
	return entries, nil
}

// sideValue sums price×quantity over the top levels by price descending.
func sideValue(levels []domain.PriceLevel) decimal.Decimal {
	sorted := make([]domain.PriceLevel, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.GreaterThan(sorted[j].Price)
	})
	if len(sorted) > maxLevels {
		sorted = sorted[:maxLevels]
	}

	total := decimal.Zero
	for _, level := range sorted {
		total = total.Add(level.Price.Mul(level.Quantity))
	}
	return total
}
