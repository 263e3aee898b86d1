// Package prices batch-fetches current price and previous close for a set of
// tickers from the vendor's chart API and normalizes its shifting response
// layouts into uniform quotes.
package prices

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Florana1/market-analyser/internal/httpx"
	"github.com/Florana1/market-analyser/internal/model"
)

// Client fetches batched quotes. Two requests per batch: a fine-grained
// intraday series for the current price and a coarse daily series for the
// previous close, separated by a short pause to stay under the vendor's
// throttle.
type Client struct {
	BaseURL string
	HTTP    *httpx.Client
	Pause   time.Duration
	log     zerolog.Logger
}

func NewClient(baseURL string, http *httpx.Client, pause time.Duration, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http,
		Pause:   pause,
		log:     log.With().Str("component", "prices").Logger(),
	}
}

// NormalizeTicker rewrites class-share separators to the vendor's canonical
// hyphen form (BRK.B and BRK/B both become BRK-B).
func NormalizeTicker(ticker string) string {
	return strings.NewReplacer(".", "-", "/", "-").Replace(ticker)
}

// FetchBatch resolves quotes for all tickers. It never fails: a whole-batch
// request failure degrades to empty quotes, and a per-ticker extraction
// failure empties only that entry. An empty input returns an empty map
// without touching the network.
func (c *Client) FetchBatch(ctx context.Context, tickers []string) map[string]model.PriceQuote {
	results := make(map[string]model.PriceQuote, len(tickers))
	if len(tickers) == 0 {
		return results
	}

	origByNorm := make(map[string]string, len(tickers))
	norm := make([]string, 0, len(tickers))
	for _, t := range tickers {
		n := NormalizeTicker(t)
		if _, seen := origByNorm[n]; !seen {
			norm = append(norm, n)
		}
		origByNorm[n] = t
	}

	intraday := c.fetchSeries(ctx, norm, "1d", "2m")
	time.Sleep(c.Pause)
	daily := c.fetchSeries(ctx, norm, "5d", "1d")

	for _, n := range norm {
		quote := derive(n, intraday, daily)
		if !quote.Valid {
			c.log.Debug().Str("ticker", n).Msg("quote unresolved, serving empty")
		}
		results[origByNorm[n]] = quote
	}
	return results
}

func (c *Client) fetchSeries(ctx context.Context, tickers []string, rng, interval string) seriesTable {
	u := fmt.Sprintf("%s?symbols=%s&range=%s&interval=%s",
		c.BaseURL, url.QueryEscape(strings.Join(tickers, ",")), rng, interval)

	body, err := c.HTTP.Get(ctx, u)
	if err != nil {
		c.log.Error().Str("range", rng).Err(err).Msg("batch download failed")
		return nil
	}
	table, err := normalizeBatch(body, tickers)
	if err != nil {
		c.log.Error().Str("range", rng).Err(err).Msg("batch normalization failed")
		return nil
	}
	return table
}

// derive computes one ticker's quote from the two series tables. A ticker
// whose data is missing or was dropped during normalization comes back as
// the empty quote; it never disturbs the rest of the batch.
func derive(ticker string, intraday, daily seriesTable) model.PriceQuote {
	var current, prev *float64

	if s := compact(intraday.series(ticker, "close")); len(s) > 0 {
		v := s[len(s)-1]
		current = &v
	}

	if s := compact(daily.series(ticker, "close")); len(s) > 0 {
		// During market hours the last daily bar is today-partial and the
		// second-to-last is yesterday's true close. Near the daily rollover
		// this read is vendor-timing sensitive; the window is accepted
		// rather than guessed around, since bar timestamps carry no
		// finalized/partial marker.
		if len(s) >= 2 {
			v := s[len(s)-2]
			prev = &v
		} else {
			v := s[0]
			prev = &v
		}
		if current == nil {
			v := s[len(s)-1]
			current = &v
		}
	}

	if current == nil || prev == nil {
		return model.EmptyQuote()
	}

	changeDollar := *current - *prev
	changePct := 0.0
	if *prev != 0 {
		changePct = changeDollar / *prev * 100
	}

	price := round2(*current)
	prevClose := round2(*prev)
	change := round2(changeDollar)
	pct := round4(changePct)
	return model.PriceQuote{
		Price:        &price,
		PrevClose:    &prevClose,
		ChangeDollar: &change,
		ChangePct:    &pct,
		Valid:        true,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
