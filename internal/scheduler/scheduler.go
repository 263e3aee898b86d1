// Package scheduler pre-warms the result cache on a cron cadence so
// interactive requests land on warm data during trading hours.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Florana1/market-analyser/internal/analyzer"
	"github.com/Florana1/market-analyser/internal/model"
)

// Scheduler manages the cron task.
type Scheduler struct {
	cron    *cron.Cron
	service *analyzer.Service
	ctx     context.Context
	log     zerolog.Logger
}

// New creates a Scheduler over the analyzer service.
func New(ctx context.Context, svc *analyzer.Service, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		service: svc,
		ctx:     ctx,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the pre-warm task. An empty spec disables it.
func (s *Scheduler) Register(prewarmCron string) error {
	if prewarmCron == "" {
		s.log.Info().Msg("prewarm disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(prewarmCron, s.prewarm); err != nil {
		return fmt.Errorf("register prewarm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// prewarm refreshes the aggregate outside the request path. Closed sessions
// are skipped: nothing moves, and the cache already holds the last state.
func (s *Scheduler) prewarm() {
	if s.service.SessionState().Session == model.SessionClosed {
		return
	}
	if _, err := s.service.Aggregate(s.ctx); err != nil {
		s.log.Error().Err(err).Msg("prewarm aggregate failed")
	}
}
