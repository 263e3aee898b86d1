// Package marketcap retrieves market capitalization per ticker via the
// vendor's fast snapshot endpoint.
package marketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/prices"
)

// Fetcher issues one snapshot request per ticker across a bounded pool of
// workers. A single ticker's failure yields a nil entry for that ticker only.
type Fetcher struct {
	BaseURL        string
	HTTP           *httpx.Client
	MaxConcurrency int
	log            zerolog.Logger
}

func NewFetcher(baseURL string, http *httpx.Client, maxConcurrency int, log zerolog.Logger) *Fetcher {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Fetcher{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		HTTP:           http,
		MaxConcurrency: maxConcurrency,
		log:            log.With().Str("component", "marketcap").Logger(),
	}
}

// FetchAll returns market cap in USD per ticker; nil marks an unresolvable
// entry. The call itself never fails.
func (f *Fetcher) FetchAll(ctx context.Context, tickers []string) map[string]*float64 {
	results := make(map[string]*float64, len(tickers))
	if len(tickers) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, f.MaxConcurrency)

	for _, t := range tickers {
		t := t
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				results[t] = nil
				mu.Unlock()
				return
			}

			mc, err := f.fetchOne(ctx, t)
			if err != nil {
				f.log.Debug().Str("ticker", t).Err(err).Msg("market cap unavailable")
				mc = nil
			}
			mu.Lock()
			results[t] = mc
			mu.Unlock()
		}()
	}
	wg.Wait()

	f.log.Info().Int("count", len(results)).Msg("market caps loaded")
	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, ticker string) (*float64, error) {
	u := fmt.Sprintf("%s/%s?fields=marketCap", f.BaseURL, url.PathEscape(prices.NormalizeTicker(ticker)))
	body, err := f.HTTP.Get(ctx, u)
	if err != nil {
		return nil, err
	}

	var payload struct {
		MarketCap *float64 `json:"marketCap"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if payload.MarketCap == nil || *payload.MarketCap == 0 {
		return nil, nil
	}
	return payload.MarketCap, nil
}
