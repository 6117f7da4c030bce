// Package ranker selects the top symbols from 24h ticker statistics.
package ranker

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"spreadwatch/internal/domain"
)

// Field selects the 24h ticker statistic used for ranking. The set is
// closed so an unknown field is rejected when configuration is parsed,
// not when a ticker is read.
type Field string

const (
	// FieldVolume base asset volume.
	FieldVolume Field = "volume"
	// FieldQuoteVolume quote asset volume.
	FieldQuoteVolume Field = "quoteVolume"
	// FieldPriceChange absolute 24h price change.
	FieldPriceChange Field = "priceChange"
	// FieldPriceChangePercent relative 24h price change.
	FieldPriceChangePercent Field = "priceChangePercent"
	// FieldLastPrice last traded price.
	FieldLastPrice Field = "lastPrice"
)

// ParseField validates a configured field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	switch f {
	case FieldVolume, FieldQuoteVolume, FieldPriceChange, FieldPriceChangePercent, FieldLastPrice:
		return f, nil
	}
	return "", errors.Errorf("unknown ranking field %q", s)
}

// String returns the string representation.
func (f Field) String() string {
	return string(f)
}

// QuoteAssetSet collects the symbols quoted in the given asset.
func QuoteAssetSet(infos []domain.SymbolInfo, quoteAsset string) map[string]struct{} {
	symbols := make(map[string]struct{})
	for _, info := range infos {
		if info.QuoteAsset == quoteAsset {
			symbols[info.Symbol] = struct{}{}
		}
	}
	return symbols
}

// TopSymbols ranks the tickers whose symbol belongs to the filter set by
// the chosen field and returns at most topN entries. The sort is stable,
// so tickers with equal values keep their fetch order. A ticker without a
// value for the field fails the whole call: a hole in the response means
// the exchange broke its data contract.
func TopSymbols(tickers []domain.Ticker, symbols map[string]struct{}, topN int, field Field, descending bool) ([]domain.RankedSymbol, error) {
	ranked := make([]domain.RankedSymbol, 0, len(symbols))
	for _, ticker := range tickers {
		if _, ok := symbols[ticker.Symbol]; !ok {
			continue
		}

		raw, err := fieldValue(ticker, field)
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s of ticker %s", field, ticker.Symbol)
		}
		ranked = append(ranked, domain.RankedSymbol{Symbol: ticker.Symbol, Value: value})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].Value.GreaterThan(ranked[j].Value)
		}
		return ranked[i].Value.LessThan(ranked[j].Value)
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

func fieldValue(ticker domain.Ticker, field Field) (string, error) {
	var raw string
	switch field {
	case FieldVolume:
		raw = ticker.Volume
	case FieldQuoteVolume:
		raw = ticker.QuoteVolume
	case FieldPriceChange:
		raw = ticker.PriceChange
	case FieldPriceChangePercent:
		raw = ticker.PriceChangePercent
	case FieldLastPrice:
		raw = ticker.LastPrice
	default:
		return "", errors.Errorf("unknown ranking field %q", field)
	}
	if raw == "" {
		return "", errors.Errorf("ticker %s has no %s value", ticker.Symbol, field)
	}
	return raw, nil
}
