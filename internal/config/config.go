package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Fund struct {
		Symbol string `yaml:"symbol"`
	} `yaml:"fund"`
	Sources struct {
		SponsorCSVURL    string `yaml:"sponsor_csv_url"`
		RankPageURL      string `yaml:"rank_page_url"`
		VendorSummaryURL string `yaml:"vendor_summary_url"`
	} `yaml:"sources"`
	Vendor struct {
		ChartBaseURL    string `yaml:"chart_base_url"`
		SnapshotBaseURL string `yaml:"snapshot_base_url"`
		TimeoutSec      int    `yaml:"timeout_sec"`
		BatchPauseMs    int    `yaml:"batch_pause_ms"`
		UserAgent       string `yaml:"user_agent"`
	} `yaml:"vendor"`
	Cache struct {
		ResultTTLSec    int `yaml:"result_ttl_sec"`
		HoldingsTTLSec  int `yaml:"holdings_ttl_sec"`
		MarketCapTTLSec int `yaml:"market_cap_ttl_sec"`
	} `yaml:"cache"`
	MarketCap struct {
		MaxConcurrency int `yaml:"max_concurrency"`
	} `yaml:"marketcap"`
	Schedule struct {
		PrewarmCron string `yaml:"prewarm_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("FUND_SYMBOL"); v != "" {
		cfg.Fund.Symbol = v
	}
	if v := os.Getenv("SPONSOR_CSV_URL"); v != "" {
		cfg.Sources.SponsorCSVURL = v
	}
	if v := os.Getenv("RANK_PAGE_URL"); v != "" {
		cfg.Sources.RankPageURL = v
	}
	if v := os.Getenv("VENDOR_SUMMARY_URL"); v != "" {
		cfg.Sources.VendorSummaryURL = v
	}
	if v := os.Getenv("VENDOR_CHART_BASE_URL"); v != "" {
		cfg.Vendor.ChartBaseURL = v
	}
	if v := os.Getenv("VENDOR_SNAPSHOT_BASE_URL"); v != "" {
		cfg.Vendor.SnapshotBaseURL = v
	}
	if v := os.Getenv("RESULT_TTL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Cache.ResultTTLSec = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Fund.Symbol == "" {
		cfg.Fund.Symbol = "QQQ"
	}
	if cfg.Sources.SponsorCSVURL == "" {
		cfg.Sources.SponsorCSVURL = "https://www.invesco.com/us/financial-products/etfs/holdings/main/holdings/0?audienceType=Investor&action=download&ticker=QQQ"
	}
	if cfg.Sources.RankPageURL == "" {
		cfg.Sources.RankPageURL = "https://www.slickcharts.com/nasdaq100"
	}
	if cfg.Sources.VendorSummaryURL == "" {
		cfg.Sources.VendorSummaryURL = "https://query1.finance.yahoo.com/v10/finance/fund/holdings/QQQ"
	}
	if cfg.Vendor.ChartBaseURL == "" {
		cfg.Vendor.ChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if cfg.Vendor.SnapshotBaseURL == "" {
		cfg.Vendor.SnapshotBaseURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	}
	if cfg.Vendor.TimeoutSec == 0 {
		cfg.Vendor.TimeoutSec = 20
	}
	if cfg.Vendor.BatchPauseMs == 0 {
		cfg.Vendor.BatchPauseMs = 500
	}
	if cfg.Vendor.UserAgent == "" {
		cfg.Vendor.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}
	if cfg.Cache.ResultTTLSec == 0 {
		cfg.Cache.ResultTTLSec = 60
	}
	if cfg.Cache.HoldingsTTLSec == 0 {
		cfg.Cache.HoldingsTTLSec = 86400
	}
	if cfg.Cache.MarketCapTTLSec == 0 {
		cfg.Cache.MarketCapTTLSec = 86400
	}
	if cfg.MarketCap.MaxConcurrency == 0 {
		cfg.MarketCap.MaxConcurrency = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535")
	}
	if c.Fund.Symbol == "" {
		return fmt.Errorf("fund.symbol is required")
	}
	if c.Vendor.ChartBaseURL == "" {
		return fmt.Errorf("vendor.chart_base_url is required")
	}
	if c.Cache.ResultTTLSec <= 0 {
		return fmt.Errorf("cache.result_ttl_sec must be positive")
	}
	if c.MarketCap.MaxConcurrency <= 0 {
		return fmt.Errorf("marketcap.max_concurrency must be positive")
	}
	return nil
}
