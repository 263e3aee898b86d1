// Package holdings resolves the fund's constituent list through an ordered
// chain of independent sources, falling through on any failure.
package holdings

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Florana1/market-analyser/internal/model"
)

// Failure taxonomy for the fallback chain. Sources wrap these so the chain
// can log the kind of failure before advancing to the next tier.
var (
	// ErrSourceUnavailable covers network and HTTP-level failures.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch means the payload arrived but expected columns were
	// absent or unparseable.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrEmptyResult means the source parsed cleanly but yielded no usable rows.
	ErrEmptyResult = errors.New("empty result")
)

// Source is one tier of the fallback chain.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Holding, error)
}

// Chain tries its sources in priority order and returns the first success.
// Every tier failure is logged, never raised; the final static tier cannot
// fail, so Resolve always returns a non-empty list.
type Chain struct {
	sources []Source
	log     zerolog.Logger
}

// NewChain builds a chain over the given sources, tried in order.
func NewChain(log zerolog.Logger, sources ...Source) *Chain {
	return &Chain{
		sources: sources,
		log:     log.With().Str("component", "holdings").Logger(),
	}
}

// Resolve returns the constituent list from the first tier that succeeds,
// sorted by descending weight.
func (c *Chain) Resolve(ctx context.Context) []model.Holding {
	for _, src := range c.sources {
		hs, err := src.Fetch(ctx)
		if err != nil {
			c.log.Warn().Str("source", src.Name()).Err(err).Msg("holdings source failed, trying next")
			continue
		}
		if len(hs) == 0 {
			c.log.Warn().Str("source", src.Name()).Msg("holdings source returned nothing, trying next")
			continue
		}
		sortByWeightDesc(hs)
		c.log.Info().Str("source", src.Name()).Int("count", len(hs)).Msg("holdings loaded")
		return hs
	}

	// Unreachable when the chain ends with the static tier; kept as a guard
	// for chains assembled without one.
	hs := staticSnapshot()
	sortByWeightDesc(hs)
	c.log.Error().Msg("all holdings sources failed, serving static snapshot")
	return hs
}
