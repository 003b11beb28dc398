package binance

// Binance REST API response structures. Only the fields this crawler
// consumes are mapped; everything else in the payloads is ignored.

// StatusTrading is the exchange-reported status of a pair that is
// currently open for trading.
const StatusTrading = "TRADING"

// ExchangeInfoResponse is the relevant part of GET /api/v3/exchangeInfo.
type ExchangeInfoResponse struct {
	Symbols []SymbolInfo `json:"symbols"`
}

// SymbolInfo is one entry of the exchangeInfo symbols array.
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"` // e.g. "TRADING", "BREAK"
}

// TickerPriceRecord is one element of the GET /api/v3/ticker/price array.
// The price arrives as text and must be parsed before any arithmetic.
type TickerPriceRecord struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}
