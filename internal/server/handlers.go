package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/Florana1/market-analyser/internal/model"
)

// fundResponse is the aggregate result annotated with the cache age, so the
// frontend can show staleness without re-deriving it.
type fundResponse struct {
	*model.AggregateResult
	CacheAgeSeconds int `json:"cache_age_seconds"`
}

// errorResponse carries best-effort partial fields alongside the error;
// session state is cheap to recompute and always available.
type errorResponse struct {
	Error        string             `json:"error"`
	Fund         struct{}           `json:"fund"`
	Holdings     []model.HoldingRow `json:"holdings"`
	MarketStatus model.SessionState `json:"market_status"`
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Aggregate(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("aggregate failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:        err.Error(),
			Holdings:     []model.HoldingRow{},
			MarketStatus: s.service.SessionState(),
		})
		return
	}
	writeJSON(w, http.StatusOK, fundResponse{
		AggregateResult: result,
		CacheAgeSeconds: int(math.Round(s.service.CacheAge().Seconds())),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.service.ForceRefresh()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cache_cleared"})
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.service.SessionState())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
