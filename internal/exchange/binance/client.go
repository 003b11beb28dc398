package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/heavyRainn/binance-crawler/internal/exchange"
	"github.com/heavyRainn/binance-crawler/internal/types"
)

const (
	exchangeInfoEndpoint = "/api/v3/exchangeInfo"
	tickerPriceEndpoint  = "/api/v3/ticker/price"
)

// Client is a read-only REST client for the Binance spot API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Binance client against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.With().Str("exchange", "binance").Logger(),
	}
}

// get performs a GET request against an API endpoint and returns the raw
// response body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrNetwork,
			Message: fmt.Sprintf("Failed to build request for %s", endpoint),
			Wrapped: err,
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrNetwork,
			Message: fmt.Sprintf("Binance API request to %s failed", endpoint),
			Wrapped: err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrNetwork,
			Message: fmt.Sprintf("Failed to read response from %s", endpoint),
			Wrapped: err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("Binance API returned non-OK status")
		return nil, types.CrawlerError{
			Code:    types.ErrNetwork,
			Message: fmt.Sprintf("Binance API returned status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			Status:  resp.StatusCode,
		}
	}

	return body, nil
}

// FetchTradableSymbols fetches exchangeInfo and returns the set of symbols
// whose status is TRADING.
func (c *Client) FetchTradableSymbols(ctx context.Context) (types.SymbolSet, error) {
	body, err := c.get(ctx, exchangeInfoEndpoint)
	if err != nil {
		return nil, err
	}

	var info ExchangeInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrDecode,
			Message: "Failed to decode exchangeInfo response",
			Wrapped: err,
		}
	}
	if info.Symbols == nil {
		return nil, types.CrawlerError{
			Code:    types.ErrDecode,
			Message: "exchangeInfo response is missing the symbols field",
		}
	}

	tradable := types.NewSymbolSet()
	for _, s := range info.Symbols {
		if s.Status == StatusTrading {
			tradable.Add(s.Symbol)
		}
	}

	c.logger.Info().
		Int("total", len(info.Symbols)).
		Int("tradable", len(tradable)).
		Msg("Fetched exchange info")

	return tradable, nil
}

// FetchTickers fetches current prices for every symbol, keeps the tradable
// ones and returns them sorted ascending by price. Ties keep the order the
// exchange returned.
func (c *Client) FetchTickers(ctx context.Context, tradable types.SymbolSet) ([]types.Ticker, error) {
	body, err := c.get(ctx, tickerPriceEndpoint)
	if err != nil {
		return nil, err
	}

	var records []TickerPriceRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrDecode,
			Message: "Failed to decode ticker/price response",
			Wrapped: err,
		}
	}

	tickers := make([]types.Ticker, 0, len(records))
	for _, r := range records {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, types.CrawlerError{
				Code:    types.ErrParse,
				Message: fmt.Sprintf("Invalid price %q for symbol %s", r.Price, r.Symbol),
				Wrapped: err,
			}
		}
		if !tradable.Has(r.Symbol) {
			continue
		}
		tickers = append(tickers, types.Ticker{
			Symbol: r.Symbol,
			Price:  price,
		})
	}

	sort.SliceStable(tickers, func(i, j int) bool {
		return tickers[i].Price.LessThan(tickers[j].Price)
	})

	c.logger.Info().
		Int("received", len(records)).
		Int("kept", len(tickers)).
		Msg("Fetched ticker prices")

	return tickers, nil
}

var _ exchange.MarketSource = (*Client)(nil)
