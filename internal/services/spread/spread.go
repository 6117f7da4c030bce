// Package spread computes bid/ask spreads and their change between polls.
package spread

import (
	"context"

	"github.com/pkg/errors"

	"spreadwatch/internal/domain"
	"spreadwatch/internal/gateway"
)

// Pairing selects how current observations are matched with previous ones
// when computing deltas.
type Pairing string

const (
	// PairByIndex matches observations by position. Requires a stable
	// symbol set and ordering between polls; any change is an error.
	PairByIndex Pairing = "index"
	// PairBySymbol matches observations by symbol, tolerating reordering.
	PairBySymbol Pairing = "symbol"
)

// ParsePairing validates a configured pairing strategy name.
func ParsePairing(s string) (Pairing, error) {
	p := Pairing(s)
	switch p {
	case PairByIndex, PairBySymbol:
		return p, nil
	}
	return "", errors.Errorf("unknown delta pairing strategy %q", s)
}

// Tracker produces spread observations for a fixed tracked symbol set.
type Tracker struct {
	gateway gateway.MarketData
	symbols map[string]struct{}
}

// NewTracker creates a spread tracker for the given symbols.
func NewTracker(gw gateway.MarketData, symbols []string) *Tracker {
	set := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		set[symbol] = struct{}{}
	}
	return &Tracker{gateway: gw, symbols: set}
}

// Snapshot returns ask−bid for every tracked symbol, in the order the
// exchange returned the book tickers.
func (t *Tracker) Snapshot(ctx context.Context) ([]domain.SpreadObservation, error) {
	tickers, err := t.gateway.BookTickers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch book tickers")
	}

	observations := make([]domain.SpreadObservation, 0, len(t.symbols))
	for _, ticker := range tickers {
		if _, ok := t.symbols[ticker.Symbol]; !ok {
			continue
		}
		observations = append(observations, domain.SpreadObservation{
			Symbol: ticker.Symbol,
			Value:  ticker.AskPrice.Sub(ticker.BidPrice),
		})
	}
	return observations, nil
}

// Deltas pairs current observations with previous ones using the given
// strategy and returns the current set with the absolute spread change
// filled in.
func Deltas(current, previous []domain.SpreadObservation, pairing Pairing) ([]domain.SpreadObservation, error) {
	switch pairing {
	case PairByIndex:
		return deltasByIndex(current, previous)
	case PairBySymbol:
		return deltasBySymbol(current, previous)
	}
	return nil, errors.Errorf("unknown delta pairing strategy %q", pairing)
}

func deltasByIndex(current, previous []domain.SpreadObservation) ([]domain.SpreadObservation, error) {
	if len(current) != len(previous) {
		return nil, errors.Errorf("observation count changed between polls: %d != %d", len(current), len(previous))
	}

	result := make([]domain.SpreadObservation, len(current))
	for i, observation := range current {
		observation.Delta = observation.Value.Sub(previous[i].Value).Abs()
		result[i] = observation
	}
	return result, nil
}

func deltasBySymbol(current, previous []domain.SpreadObservation) ([]domain.SpreadObservation, error) {
	previousBySymbol := make(map[string]domain.SpreadObservation, len(previous))
	for _, observation := range previous {
		previousBySymbol[observation.Symbol] = observation
	}

	result := make([]domain.SpreadObservation, len(current))
	for i, observation := range current {
		prev, ok := previousBySymbol[observation.Symbol]
		if !ok {
			return nil, errors.Errorf("symbol %s has no previous observation", observation.Symbol)
		}
		observation.Delta = observation.Value.Sub(prev.Value).Abs()
		result[i] = observation
	}
	return result, nil
}
