package spread

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"spreadwatch/internal/domain"
)

type fakeGateway struct {
	tickers []domain.BookTicker
	err     error
}

func (f *fakeGateway) ExchangeInfo(context.Context) ([]domain.SymbolInfo, error) { return nil, nil }
func (f *fakeGateway) Tickers24h(context.Context) ([]domain.Ticker, error)       { return nil, nil }
func (f *fakeGateway) OrderBook(context.Context, string) (domain.OrderBook, error) {
	return domain.OrderBook{}, nil
}

func (f *fakeGateway) BookTickers(context.Context) ([]domain.BookTicker, error) {
	return f.tickers, f.err
}

func bookTicker(symbol, bid, ask string) domain.BookTicker {
	return domain.BookTicker{
		Symbol:   symbol,
		BidPrice: decimal.RequireFromString(bid),
		AskPrice: decimal.RequireFromString(ask),
	}
}

func observation(symbol, value string) domain.SpreadObservation {
	return domain.SpreadObservation{Symbol: symbol, Value: decimal.RequireFromString(value)}
}

func TestSnapshotFiltersAndKeepsFetchOrder(t *testing.T) {
	gw := &fakeGateway{tickers: []domain.BookTicker{
		bookTicker("XRPUSDT", "0.5", "0.6"),
		bookTicker("AUSDT", "100", "100.5"),
		bookTicker("BUSDT", "200", "200.25"),
	}}
	tracker := NewTracker(gw, []string{"AUSDT", "BUSDT"})

	observations, err := tracker.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 2)

	require.Equal(t, "AUSDT", observations[0].Symbol)
	require.True(t, observations[0].Value.Equal(decimal.RequireFromString("0.5")))
	require.Equal(t, "BUSDT", observations[1].Symbol)
	require.True(t, observations[1].Value.Equal(decimal.RequireFromString("0.25")))
}

func TestSnapshotGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("exchange unreachable")}
	tracker := NewTracker(gw, []string{"AUSDT"})

	_, err := tracker.Snapshot(context.Background())
	require.Error(t, err)
}

func TestDeltasByIndex(t *testing.T) {
	previous := []domain.SpreadObservation{
		observation("AUSDT", "1.0"),
		observation("BUSDT", "2.0"),
	}
	current := []domain.SpreadObservation{
		observation("AUSDT", "1.5"),
		observation("BUSDT", "2.5"),
	}

	result, err := Deltas(current, previous, PairByIndex)
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.True(t, result[0].Delta.Equal(decimal.RequireFromString("0.5")))
	require.True(t, result[1].Delta.Equal(decimal.RequireFromString("0.5")))
}

func TestDeltasAreAbsolute(t *testing.T) {
	previous := []domain.SpreadObservation{observation("AUSDT", "2.0")}
	current := []domain.SpreadObservation{observation("AUSDT", "1.2")}

	result, err := Deltas(current, previous, PairByIndex)
	require.NoError(t, err)
	require.True(t, result[0].Delta.Equal(decimal.RequireFromString("0.8")))
}

func TestDeltasByIndexCountMismatch(t *testing.T) {
	previous := []domain.SpreadObservation{observation("AUSDT", "1.0")}
	current := []domain.SpreadObservation{
		observation("AUSDT", "1.5"),
		observation("BUSDT", "2.5"),
	}

	_, err := Deltas(current, previous, PairByIndex)
	require.Error(t, err)
}

func TestDeltasBySymbolToleratesReordering(t *testing.T) {
	previous := []domain.SpreadObservation{
		observation("AUSDT", "1.0"),
		observation("BUSDT", "2.0"),
	}
	current := []domain.SpreadObservation{
		observation("BUSDT", "2.5"),
		observation("AUSDT", "1.5"),
	}

	result, err := Deltas(current, previous, PairBySymbol)
	require.NoError(t, err)
	require.Equal(t, "BUSDT", result[0].Symbol)
	require.True(t, result[0].Delta.Equal(decimal.RequireFromString("0.5")))
	require.Equal(t, "AUSDT", result[1].Symbol)
	require.True(t, result[1].Delta.Equal(decimal.RequireFromString("0.5")))
}

func TestDeltasBySymbolMissingPrevious(t *testing.T) {
	previous := []domain.SpreadObservation{observation("AUSDT", "1.0")}
	current := []domain.SpreadObservation{observation("BUSDT", "2.5")}

	_, err := Deltas(current, previous, PairBySymbol)
	require.Error(t, err)
	require.Contains(t, err.Error(), "BUSDT")
}

func TestDeltasLeaveInputUntouched(t *testing.T) {
	previous := []domain.SpreadObservation{observation("AUSDT", "1.0")}
	current := []domain.SpreadObservation{observation("AUSDT", "1.5")}

	_, err := Deltas(current, previous, PairByIndex)
	require.NoError(t, err)
	require.True(t, current[0].Delta.IsZero())
}

func TestParsePairing(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Pairing
		shouldErr bool
	}{
		{name: "index", input: "index", expected: PairByIndex},
		{name: "symbol", input: "symbol", expected: PairBySymbol},
		{name: "unknown", input: "position", shouldErr: true},
		{name: "empty", input: "", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairing, err := ParsePairing(tt.input)
			if tt.shouldErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, pairing)
		})
	}
}
