package crawler

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/heavyRainn/binance-crawler/internal/config"
	"github.com/heavyRainn/binance-crawler/internal/exchange"
	"github.com/heavyRainn/binance-crawler/internal/report"
	"github.com/heavyRainn/binance-crawler/internal/types"
)

// Crawler runs one fetch-and-report cycle against a market source.
type Crawler struct {
	source exchange.MarketSource
	out    io.Writer
	format string
	logger zerolog.Logger
}

// New creates a crawler writing its report to out in the given format
// (config.FormatText or config.FormatJSON).
func New(source exchange.MarketSource, out io.Writer, format string) *Crawler {
	return &Crawler{
		source: source,
		out:    out,
		format: format,
		logger: log.With().Str("component", "crawler").Logger(),
	}
}

// Run fetches the tradable symbol set, fetches and filters ticker prices,
// and writes the report. Any fetch or build failure aborts the run and is
// returned to the caller for classification. An unknown format fails
// before any fetch.
func (c *Crawler) Run(ctx context.Context) error {
	if c.format != config.FormatText && c.format != config.FormatJSON {
		return types.CrawlerError{
			Code:    types.ErrConfigLoading,
			Message: fmt.Sprintf("Unknown report format %q", c.format),
		}
	}

	logger := c.logger.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().Msg("Starting crawl")

	tradable, err := c.source.FetchTradableSymbols(ctx)
	if err != nil {
		return err
	}

	tickers, err := c.source.FetchTickers(ctx, tradable)
	if err != nil {
		return err
	}

	rep, err := report.Build(tickers)
	if err != nil {
		return err
	}

	logger.Info().
		Int("tickers", len(rep.Tickers)).
		Str("average", rep.Average.String()).
		Msg("Report built")

	if c.format == config.FormatJSON {
		return rep.WriteJSON(c.out)
	}
	return rep.WriteText(c.out)
}
