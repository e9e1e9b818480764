// Package service provides the core business service implementing the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/record"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Service wraps the leaderboard store and carries the ambient concerns:
// logging, metrics and operational stats. It is the single owner of the
// store, so all requests funnel through one serialization point.
type Service struct {
	mu sync.Mutex

	store     repository.Store
	storePath string

	started bool
	logger  logger.Logger

	// Counters exposed via GetStats.
	reads       atomic.Int64
	submissions atomic.Int64
	rejected    atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-built store, mainly for tests.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStorePath sets the backing file path for the default FileStore.
func WithStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storePath = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the store if none was injected and initializes the backing
// file. An initialization failure means the process has no writable store
// and must not serve requests.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewFileStore(ctx, repository.WithPath(s.storePath))
	}
	if fs, ok := s.store.(*repository.FileStore); ok {
		s.storePath = fs.Path()
	}

	if err := s.store.Initialize(ctx); err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "leaderboard service started", logger.String("store", s.storePath))
	return nil
}

// Stop marks the service stopped. The store holds no open resources; the
// file is closed after every operation.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// Leaderboard returns the stored records exactly as persisted.
func (s *Service) Leaderboard(ctx context.Context) ([]record.Record, error) {
	s.reads.Add(1)
	records, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Error(ctx, "leaderboard read failed", logger.Error(err))
		return nil, err
	}
	metrics.UpdateLeaderboardSize(len(records))
	return records, nil
}

// Submit merges a submission into the leaderboard and returns the
// persisted post-merge state.
func (s *Service) Submit(ctx context.Context, name string, score float64) ([]record.Record, error) {
	s.submissions.Add(1)
	records, err := s.store.Submit(ctx, name, score)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrValidation):
			s.rejected.Add(1)
			metrics.RecordSubmissionRejected("validation")
			s.logger.Debug(ctx, "submission rejected", logger.Error(err))
		case errors.Is(err, repository.ErrPersist):
			metrics.RecordSubmissionRejected("persist")
			s.logger.Error(ctx, "submission persist failed", logger.Error(err))
		default:
			metrics.RecordSubmissionRejected("internal")
			s.logger.Error(ctx, "submission failed", logger.Error(err))
		}
		return nil, err
	}

	metrics.RecordSubmissionAccepted()
	metrics.UpdateLeaderboardSize(len(records))
	s.logger.Debug(ctx, "submission merged",
		logger.String("name", name),
		logger.Float64("score", score),
		logger.Int("entries", len(records)),
	)
	return records, nil
}

// GetStats exposes operational counters for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	entries := 0
	if records, err := s.store.Read(context.Background()); err == nil {
		entries = len(records)
	}
	return map[string]interface{}{
		"storePath":   s.storePath,
		"entries":     entries,
		"reads":       int(s.reads.Load()),
		"submissions": int(s.submissions.Load()),
		"rejected":    int(s.rejected.Load()),
	}
}
