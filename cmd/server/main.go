package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Florana1/market-analyser/internal/analyzer"
	"github.com/Florana1/market-analyser/internal/config"
	"github.com/Florana1/market-analyser/internal/holdings"
	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/logger"
	"github.com/Florana1/market-analyser/internal/marketcap"
	"github.com/Florana1/market-analyser/internal/marketclock"
	"github.com/Florana1/market-analyser/internal/prices"
	"github.com/Florana1/market-analyser/internal/scheduler"
	"github.com/Florana1/market-analyser/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		stdlog.Fatalf("config validation: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Str("fund", cfg.Fund.Symbol).Msg("market-analyser starting")

	timeout := time.Duration(cfg.Vendor.TimeoutSec) * time.Second

	// The sponsor export and ranking page reject bare clients, so those two
	// sources share a browser-like client.
	browser := httpx.New(timeout, cfg.Proxy)
	browser.Headers = map[string]string{
		"User-Agent":      cfg.Vendor.UserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
	api := httpx.New(timeout, cfg.Proxy)
	api.Headers = map[string]string{"User-Agent": cfg.Vendor.UserAgent}

	chain := holdings.NewChain(log,
		holdings.NewSponsorCSV(cfg.Sources.SponsorCSVURL, browser),
		holdings.NewRankPage(cfg.Sources.RankPageURL, browser),
		holdings.NewVendorSummary(cfg.Sources.VendorSummaryURL, api),
		holdings.NewStatic(),
	)
	quoteClient := prices.NewClient(cfg.Vendor.ChartBaseURL, api,
		time.Duration(cfg.Vendor.BatchPauseMs)*time.Millisecond, log)
	capFetcher := marketcap.NewFetcher(cfg.Vendor.SnapshotBaseURL, api,
		cfg.MarketCap.MaxConcurrency, log)

	svc := analyzer.NewService(cfg.Fund.Symbol, chain, quoteClient, capFetcher,
		marketclock.New(), analyzer.TTLs{
			Result:    time.Duration(cfg.Cache.ResultTTLSec) * time.Second,
			Holdings:  time.Duration(cfg.Cache.HoldingsTTLSec) * time.Second,
			MarketCap: time.Duration(cfg.Cache.MarketCapTTLSec) * time.Second,
		}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, svc, log)
	if err := sched.Register(cfg.Schedule.PrewarmCron); err != nil {
		log.Fatal().Err(err).Msg("register prewarm task")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(cfg.Server.Port, svc, log)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("market-analyser stopped")
}
