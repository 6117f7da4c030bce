// Package domain defines the market data structures shared across the app.
package domain

// SymbolInfo describes a trading pair from exchange metadata.
type SymbolInfo struct {
	// Symbol is the pair identifier, e.g. "BTCUSDT".
	Symbol string `json:"symbol"`
	// BaseAsset is the traded currency.
	BaseAsset string `json:"baseAsset"`
	// QuoteAsset is the denominating currency.
	QuoteAsset string `json:"quoteAsset"`
}

// Ticker holds 24h statistics for a single symbol. Numeric fields keep the
// raw exchange representation and are parsed to decimal on use, so a missing
// field is detected exactly where the value is needed.
type Ticker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
}
