package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"spreadwatch/internal/domain"
)

func TestRankedFixedPoint(t *testing.T) {
	var buf bytes.Buffer
	Ranked(&buf, []domain.RankedSymbol{
		{Symbol: "BTCUSDT", Value: decimal.RequireFromString("123.456")},
	})

	assert.Equal(t, "BTCUSDT: 123.456000\n", buf.String())
}

func TestRankedKeepsTinyValues(t *testing.T) {
	var buf bytes.Buffer
	Ranked(&buf, []domain.RankedSymbol{
		{Symbol: "ETHBTC", Value: decimal.RequireFromString("0.00000001")},
	})

	// more than six fractional digits survive, no scientific notation
	assert.Equal(t, "ETHBTC:  0.00000001\n", buf.String())
}

func TestRankedLongSymbolIsNotTruncated(t *testing.T) {
	var buf bytes.Buffer
	Ranked(&buf, []domain.RankedSymbol{
		{Symbol: "LONGSYMUSDT", Value: decimal.NewFromInt(1)},
	})

	assert.Equal(t, "LONGSYMUSDT:1.000000\n", buf.String())
}

func TestNotionalFormat(t *testing.T) {
	var buf bytes.Buffer
	Notional(&buf, []domain.NotionalEntry{
		{Symbol: "BTCUSDT", Side: domain.SideBid, Value: decimal.NewFromInt(42)},
		{Symbol: "BTCUSDT", Side: domain.SideAsk, Value: decimal.RequireFromString("43.5")},
	})

	assert.Equal(t, "BTCUSDT: bid - 42.000000\nBTCUSDT: ask - 43.500000\n", buf.String())
}

func TestSpreadsFormat(t *testing.T) {
	var buf bytes.Buffer
	Spreads(&buf, []domain.SpreadObservation{
		{Symbol: "BTCUSDT", Value: decimal.RequireFromString("0.01")},
	})

	assert.Equal(t, "BTCUSDT: 0.010000\n", buf.String())
}

func TestSpreadDeltasFormat(t *testing.T) {
	var buf bytes.Buffer
	SpreadDeltas(&buf, []domain.SpreadObservation{
		{
			Symbol: "BTCUSDT",
			Value:  decimal.RequireFromString("1.5"),
			Delta:  decimal.RequireFromString("0.5"),
		},
	})

	assert.Equal(t, "BTCUSDT: spread - 1.500000 : delta - 0.500000\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "pads to six digits", input: "123.456", expected: "123.456000"},
		{name: "integer", input: "100", expected: "100.000000"},
		{name: "exactly six digits", input: "0.000001", expected: "0.000001"},
		{name: "eight digits kept", input: "0.00000001", expected: "0.00000001"},
		{name: "sixteen digits kept", input: "0.0002999999999999", expected: "0.0002999999999999"},
		{name: "negative", input: "-1.5", expected: "-1.500000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(decimal.RequireFromString(tt.input)))
		})
	}
}
