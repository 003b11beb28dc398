package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heavyRainn/binance-crawler/internal/config"
	"github.com/heavyRainn/binance-crawler/internal/exchange/binance"
	"github.com/heavyRainn/binance-crawler/internal/types"
)

type fakeSource struct {
	symbols    types.SymbolSet
	tickers    []types.Ticker
	symbolsErr error
	tickersErr error

	symbolsCalled bool
	tickersCalled bool
	gotTradable   types.SymbolSet
}

func (f *fakeSource) FetchTradableSymbols(ctx context.Context) (types.SymbolSet, error) {
	f.symbolsCalled = true
	if f.symbolsErr != nil {
		return nil, f.symbolsErr
	}
	return f.symbols, nil
}

func (f *fakeSource) FetchTickers(ctx context.Context, tradable types.SymbolSet) ([]types.Ticker, error) {
	f.tickersCalled = true
	f.gotTradable = tradable
	if f.tickersErr != nil {
		return nil, f.tickersErr
	}
	return f.tickers, nil
}

func mkTicker(symbol, price string) types.Ticker {
	return types.Ticker{Symbol: symbol, Price: decimal.RequireFromString(price)}
}

func TestRunText(t *testing.T) {
	source := &fakeSource{
		symbols: types.NewSymbolSet("BTCUSDT", "ETHUSDT"),
		tickers: []types.Ticker{
			mkTicker("ETHUSDT", "3000.50"),
			mkTicker("BTCUSDT", "50000"),
		},
	}

	var buf bytes.Buffer
	c := New(source, &buf, config.FormatText)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if source.gotTradable == nil || !source.gotTradable.Has("BTCUSDT") {
		t.Error("expected the fetched symbol set to be passed into the ticker fetch")
	}

	out := buf.String()
	for _, want := range []string{
		"Symbol: ETHUSDT, Price: 3000.5",
		"Symbol: BTCUSDT, Price: 50000",
		"Total tickers: 2",
		"Average price: 26500.25",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestRunJSON(t *testing.T) {
	source := &fakeSource{
		symbols: types.NewSymbolSet("BTCUSDT"),
		tickers: []types.Ticker{mkTicker("BTCUSDT", "50000.00")},
	}

	var buf bytes.Buffer
	c := New(source, &buf, config.FormatJSON)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var out struct {
		Tickers []struct {
			Symbol string `json:"symbol"`
			Price  string `json:"price"`
		} `json:"tickers"`
		Summary struct {
			Count   int    `json:"count"`
			Average string `json:"average"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if out.Summary.Count != 1 || out.Summary.Average != "50000" {
		t.Errorf("unexpected summary: %+v", out.Summary)
	}
	if len(out.Tickers) != 1 || out.Tickers[0].Symbol != "BTCUSDT" {
		t.Errorf("unexpected tickers: %+v", out.Tickers)
	}
}

func TestRunSymbolFetchFailure(t *testing.T) {
	source := &fakeSource{
		symbolsErr: types.CrawlerError{
			Code:    types.ErrNetwork,
			Message: "Binance API returned status 500 Internal Server Error",
			Status:  500,
		},
	}

	var buf bytes.Buffer
	c := New(source, &buf, config.FormatText)
	err := c.Run(context.Background())

	var cerr types.CrawlerError
	if !errors.As(err, &cerr) || cerr.Code != types.ErrNetwork {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if source.tickersCalled {
		t.Error("ticker fetch must not run after a symbol fetch failure")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure, got %q", buf.String())
	}
}

// TestRunAgainstFakeExchange drives the whole pipeline through the real
// Binance client against a fake exchange.
func TestRunAgainstFakeExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/exchangeInfo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbols": [
			{"symbol": "BTCUSDT", "status": "TRADING"},
			{"symbol": "ETHBTC", "status": "BREAK"}
		]}`))
	})
	mux.HandleFunc("/api/v3/ticker/price", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"symbol": "BTCUSDT", "price": "50000.00"},
			{"symbol": "ETHBTC", "price": "0.05"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	client := binance.NewClient(srv.URL, 5*time.Second)
	c := New(client, &buf, config.FormatText)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "ETHBTC") {
		t.Errorf("non-trading symbol leaked into the report:\n%s", out)
	}
	for _, want := range []string{
		"Symbol: BTCUSDT, Price: 50000",
		"Total tickers: 1",
		"Average price: 50000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmptyResult(t *testing.T) {
	source := &fakeSource{
		symbols: types.NewSymbolSet(),
		tickers: nil,
	}

	var buf bytes.Buffer
	c := New(source, &buf, config.FormatText)
	err := c.Run(context.Background())

	var cerr types.CrawlerError
	if !errors.As(err, &cerr) || cerr.Code != types.ErrEmptyResult {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure, got %q", buf.String())
	}
}

func TestRunUnknownFormat(t *testing.T) {
	source := &fakeSource{
		symbols: types.NewSymbolSet("BTCUSDT"),
		tickers: []types.Ticker{mkTicker("BTCUSDT", "50000")},
	}

	var buf bytes.Buffer
	c := New(source, &buf, "xml")
	err := c.Run(context.Background())

	var cerr types.CrawlerError
	if !errors.As(err, &cerr) || cerr.Code != types.ErrConfigLoading {
		t.Fatalf("expected ErrConfigLoading, got %v", err)
	}
	if source.symbolsCalled {
		t.Error("an unknown format must fail before any fetch")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure, got %q", buf.String())
	}
}
