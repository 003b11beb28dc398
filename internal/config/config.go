package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/heavyRainn/binance-crawler/internal/types"
)

// Config holds the application configuration.
type Config struct {
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExchangeConfig holds Binance REST API settings.
type ExchangeConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Format string `mapstructure:"format"` // "text" or "json"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// LoadConfig reads configuration from an optional YAML file. An empty path
// yields the built-in defaults, so the binary runs with no config at all.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("exchange.base_url", "https://api.binance.com")
	v.SetDefault("exchange.http_timeout", "10s")
	v.SetDefault("report.format", FormatText)
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, types.CrawlerError{
				Code:    types.ErrConfigLoading,
				Message: "Failed to read config file",
				Wrapped: err,
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.CrawlerError{
			Code:    types.ErrConfigLoading,
			Message: "Failed to unmarshal config",
			Wrapped: err,
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Exchange.BaseURL == "" {
		return types.CrawlerError{
			Code:    types.ErrConfigLoading,
			Message: "exchange.base_url must not be empty",
		}
	}
	if c.Exchange.HTTPTimeout <= 0 {
		return types.CrawlerError{
			Code:    types.ErrConfigLoading,
			Message: fmt.Sprintf("exchange.http_timeout must be positive, got %s", c.Exchange.HTTPTimeout),
		}
	}
	if c.Report.Format != FormatText && c.Report.Format != FormatJSON {
		return types.CrawlerError{
			Code:    types.ErrConfigLoading,
			Message: fmt.Sprintf("report.format must be %q or %q, got %q", FormatText, FormatJSON, c.Report.Format),
		}
	}
	return nil
}
