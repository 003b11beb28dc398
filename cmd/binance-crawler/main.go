package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/heavyRainn/binance-crawler/internal/config"
	"github.com/heavyRainn/binance-crawler/internal/crawler"
	"github.com/heavyRainn/binance-crawler/internal/exchange/binance"
	"github.com/heavyRainn/binance-crawler/internal/logging"
	"github.com/heavyRainn/binance-crawler/internal/types"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	format := flag.String("format", "", "Report format, text or json (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	if *format != "" {
		cfg.Report.Format = *format
	}
	if cfg.Report.Format != config.FormatText && cfg.Report.Format != config.FormatJSON {
		log.Fatal().Str("format", cfg.Report.Format).Msg("Unknown report format")
	}

	client := binance.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.HTTPTimeout)
	c := crawler.New(client, os.Stdout, cfg.Report.Format)

	if err := c.Run(context.Background()); err != nil {
		logCrawlFailure(log.Logger, err)
		os.Exit(1)
	}

	log.Info().Msg("Crawl finished")
}

// logCrawlFailure writes one diagnostic for a failed run: known error
// kinds carry their code, anything else is reported as unexpected.
func logCrawlFailure(logger zerolog.Logger, err error) {
	var cerr types.CrawlerError
	if errors.As(err, &cerr) {
		logger.Error().Str("kind", cerr.Code.String()).Err(err).Msg("Crawl failed")
		return
	}
	logger.Error().Err(err).Msg("Crawl failed with unexpected error")
}
