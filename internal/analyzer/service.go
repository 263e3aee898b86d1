// Package analyzer assembles the fund dataset: holdings, quotes, market caps
// and per-holding contributions, behind a short-TTL result cache.
package analyzer

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/Florana1/market-analyser/internal/cache"
	"github.com/Florana1/market-analyser/internal/marketclock"
	"github.com/Florana1/market-analyser/internal/model"
)

// HoldingsResolver yields the fund's constituents; it cannot fail.
type HoldingsResolver interface {
	Resolve(ctx context.Context) []model.Holding
}

// QuoteFetcher resolves batched quotes; failures surface as invalid quotes.
type QuoteFetcher interface {
	FetchBatch(ctx context.Context, tickers []string) map[string]model.PriceQuote
}

// CapFetcher resolves market caps; failures surface as nil entries.
type CapFetcher interface {
	FetchAll(ctx context.Context, tickers []string) map[string]*float64
}

// TTLs configures the three cache slots.
type TTLs struct {
	Result    time.Duration
	Holdings  time.Duration
	MarketCap time.Duration
}

// Service runs the full pipeline on result-cache misses. The three slots are
// the only shared mutable state; each is refreshed by an independent,
// idempotent recomputation.
type Service struct {
	fundSymbol string
	holdings   HoldingsResolver
	quotes     QuoteFetcher
	caps       CapFetcher
	clock      *marketclock.Clock
	log        zerolog.Logger

	resultSlot   *cache.Slot[*model.AggregateResult]
	holdingsSlot *cache.Slot[[]model.Holding]
	capsSlot     *cache.Slot[map[string]*float64]
}

func NewService(fundSymbol string, h HoldingsResolver, q QuoteFetcher, c CapFetcher,
	clock *marketclock.Clock, ttls TTLs, log zerolog.Logger) *Service {
	return &Service{
		fundSymbol:   fundSymbol,
		holdings:     h,
		quotes:       q,
		caps:         c,
		clock:        clock,
		log:          log.With().Str("component", "analyzer").Logger(),
		resultSlot:   cache.NewSlot[*model.AggregateResult](ttls.Result),
		holdingsSlot: cache.NewSlot[[]model.Holding](ttls.Holdings),
		capsSlot:     cache.NewSlot[map[string]*float64](ttls.MarketCap),
	}
}

// Aggregate returns the assembled dataset, recomputing only when the result
// cache has gone stale.
func (s *Service) Aggregate(ctx context.Context) (*model.AggregateResult, error) {
	return s.resultSlot.Get(func() (*model.AggregateResult, error) {
		return s.assemble(ctx)
	})
}

// ForceRefresh expires the result slot so the next Aggregate recomputes.
// Holdings and market-cap slots keep their long TTLs.
func (s *Service) ForceRefresh() {
	s.resultSlot.Expire()
	s.log.Info().Msg("result cache expired")
}

// SessionState reports the current market session. Cheap, always available.
func (s *Service) SessionState() model.SessionState {
	return s.clock.Session()
}

// CacheAge reports how old the served result is.
func (s *Service) CacheAge() time.Duration {
	return s.resultSlot.Age()
}

func (s *Service) assemble(ctx context.Context) (*model.AggregateResult, error) {
	holdings, err := s.holdingsSlot.Get(func() ([]model.Holding, error) {
		return s.holdings.Resolve(ctx), nil
	})
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
	}

	// The fund itself rides in the same batch so its own quote costs no
	// extra request.
	quotes := s.quotes.FetchBatch(ctx, append([]string{s.fundSymbol}, tickers...))

	caps, err := s.capsSlot.Get(func() (map[string]*float64, error) {
		return s.caps.FetchAll(ctx, tickers), nil
	})
	if err != nil {
		return nil, err
	}

	rows := make([]model.HoldingRow, 0, len(holdings))
	total := 0.0
	for _, h := range holdings {
		q, ok := quotes[h.Ticker]
		if !ok {
			q = model.EmptyQuote()
		}
		changePct := 0.0
		if q.ChangePct != nil {
			changePct = *q.ChangePct
		}
		contrib := Contribution(h.Weight, changePct)
		total += contrib

		rows = append(rows, model.HoldingRow{
			Ticker:       h.Ticker,
			Name:         h.Name,
			MarketCap:    caps[h.Ticker],
			Weight:       round4(h.Weight * 100),
			Price:        q.Price,
			ChangeDollar: q.ChangeDollar,
			ChangePct:    changePct,
			Contribution: contrib,
			Valid:        q.Valid,
		})
	}

	// Largest movers first, sign ignored.
	sort.SliceStable(rows, func(i, j int) bool {
		return math.Abs(rows[i].Contribution) > math.Abs(rows[j].Contribution)
	})

	fundQuote, ok := quotes[s.fundSymbol]
	if !ok {
		fundQuote = model.EmptyQuote()
	}

	result := &model.AggregateResult{
		Fund: model.FundSummary{
			Price:             fundQuote.Price,
			ChangeDollar:      fundQuote.ChangeDollar,
			ChangePct:         fundQuote.ChangePct,
			TotalContribution: round4(total),
		},
		Holdings:     rows,
		MarketStatus: s.clock.Session(),
		FetchedAt:    time.Now().UTC(),
	}
	s.log.Info().Int("holdings", len(rows)).Msg("aggregate assembled")
	return result, nil
}
