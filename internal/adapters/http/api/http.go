// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/okian/podium/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Leaderboard returns the stored records as persisted.
	Leaderboard(ctx context.Context) ([]record.Record, error)

	// Submit merges a submission and returns the post-merge top entries.
	Submit(ctx context.Context, name string, score float64) ([]record.Record, error)
}

// Record mirrors the read shape returned by leaderboard queries.
type Record = record.Record

// Server wires HTTP routes for the business API.
type Server struct {
	leaderboardHandler *LeaderboardHandler
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	limiter            *rate.Limiter
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithRateLimit enables a token-bucket limiter on submissions. rps <= 0
// disables limiting.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		leaderboardHandler: NewLeaderboardHandler(deps),
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/leaderboard",
		RequestIDMiddleware(
			CORSMiddleware(
				RateLimitMiddleware(s.limiter, "leaderboard",
					MetricsMiddleware(s.leaderboardHandler.HandleLeaderboard, "leaderboard")))))
}

// errorResponse is the single error shape on the wire.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
