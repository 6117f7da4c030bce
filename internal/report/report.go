// Package report renders market statistics as aligned console lines.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"spreadwatch/internal/domain"
)

// symbolWidth is the minimum printed width of the "SYMBOL:" prefix.
const symbolWidth = 9

// Ranked writes one line per ranked symbol with a plain value.
func Ranked(w io.Writer, rows []domain.RankedSymbol) {
	for _, row := range rows {
		line(w, row.Symbol, formatValue(row.Value))
	}
}

// Notional writes one line per entry as "<side> - <value>".
func Notional(w io.Writer, entries []domain.NotionalEntry) {
	for _, entry := range entries {
		line(w, entry.Symbol, fmt.Sprintf("%s - %s", entry.Side, formatValue(entry.Value)))
	}
}

// Spreads writes one line per observation with a plain spread value.
func Spreads(w io.Writer, observations []domain.SpreadObservation) {
	for _, observation := range observations {
		line(w, observation.Symbol, formatValue(observation.Value))
	}
}

// SpreadDeltas writes one line per observation as
// "spread - <value> : delta - <delta>".
func SpreadDeltas(w io.Writer, observations []domain.SpreadObservation) {
	for _, observation := range observations {
		line(w, observation.Symbol, fmt.Sprintf("spread - %s : delta - %s",
			formatValue(observation.Value), formatValue(observation.Delta)))
	}
}

func line(w io.Writer, symbol, value string) {
	fmt.Fprintf(w, "%-*s%s\n", symbolWidth, symbol+":", value)
}

// formatValue renders a decimal as plain fixed-point with at least six
// fractional digits. Values with more precision keep every digit; nothing
// is ever rounded away or rendered in scientific notation.
func formatValue(d decimal.Decimal) string {
	if d.Exponent() >= -6 {
		return d.StringFixed(6)
	}
	return d.String()
}
