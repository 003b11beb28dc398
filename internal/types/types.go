package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// --- Market Data Structures ---

// Ticker is the current price of one trading pair. It is constructed once
// by the exchange client and never mutated afterwards.
type Ticker struct {
	Symbol string          // e.g. "BTCUSDT"
	Price  decimal.Decimal // non-negative, arbitrary precision
}

func (t Ticker) String() string {
	return fmt.Sprintf("Symbol: %s, Price: %s", t.Symbol, t.Price)
}

// SymbolSet is a membership filter over exchange symbols.
type SymbolSet map[string]struct{}

// NewSymbolSet builds a set from the given symbols.
func NewSymbolSet(symbols ...string) SymbolSet {
	s := make(SymbolSet, len(symbols))
	for _, sym := range symbols {
		s.Add(sym)
	}
	return s
}

// Add inserts a symbol into the set.
func (s SymbolSet) Add(symbol string) {
	s[symbol] = struct{}{}
}

// Has reports whether the symbol is in the set.
func (s SymbolSet) Has(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// --- Standardized Errors ---

// ErrorCode defines standard failure reasons.
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrConfigLoading
	ErrNetwork     // non-success transport response from the exchange API
	ErrDecode      // response body does not match the expected JSON shape
	ErrParse       // a price field is not a valid decimal numeral
	ErrEmptyResult // zero tickers survive filtering, average is undefined
)

func (c ErrorCode) String() string {
	switch c {
	case ErrConfigLoading:
		return "ConfigLoading"
	case ErrNetwork:
		return "Network"
	case ErrDecode:
		return "Decode"
	case ErrParse:
		return "Parse"
	case ErrEmptyResult:
		return "EmptyResult"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// CrawlerError standardizes application errors.
type CrawlerError struct {
	Code    ErrorCode // Standardized code
	Message string    // Human-readable context
	Status  int       // HTTP status for ErrNetwork responses, zero otherwise
	Wrapped error     // Original error, if any
}

func (e CrawlerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap provides compatibility with errors.Is and errors.As.
func (e CrawlerError) Unwrap() error {
	return e.Wrapped
}
