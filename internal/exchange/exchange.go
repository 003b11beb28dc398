package exchange

import (
	"context"

	"github.com/heavyRainn/binance-crawler/internal/types"
)

// MarketSource defines the common interface for read-only market data
// from one exchange.
type MarketSource interface {
	// FetchTradableSymbols returns the set of symbols currently open for
	// trading on the exchange.
	FetchTradableSymbols(ctx context.Context) (types.SymbolSet, error)

	// FetchTickers returns current prices for all symbols in the tradable
	// set, sorted ascending by price. Ties keep the exchange's order.
	FetchTickers(ctx context.Context, tradable types.SymbolSet) ([]types.Ticker, error)
}
