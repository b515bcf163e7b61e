// Package service provides the application layer between the score source
// and the adapters that present the board.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
	"github.com/okian/cosmicboard/internal/domain/types"
	"github.com/okian/cosmicboard/pkg/logger"
	"github.com/okian/cosmicboard/pkg/metrics"
)

// ErrNoLoader is returned by Start when the service has nothing to load from.
var ErrNoLoader = errors.New("no score loader configured")

// Loader produces a board. It must not fail; *source.Source satisfies it.
type Loader interface {
	Load(ctx context.Context) model.Board
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) model.Board

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) model.Board { return f(ctx) }

// Service loads the board once and answers filtered queries against it.
// The loaded list is never mutated, so queries only take a read lock.
type Service struct {
	mu sync.RWMutex

	loader Loader

	// State
	board    model.Board
	summary  stats.Summary
	started  bool
	loadedAt time.Time

	queries atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader sets where the board comes from.
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the board. Calling it again on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.loader == nil {
		return ErrNoLoader
	}

	s.logger.Info(ctx, "loading score board...")

	board := s.loader.Load(ctx)
	board.Scores = board.Scores.Clone()
	s.board = board
	s.summary = stats.Compute(board.Scores)
	s.loadedAt = time.Now()
	s.started = true

	metrics.UpdateBoard(len(board.Scores), s.summary.UniquePlayers, s.summary.MaxScore, s.summary.MaxWave, board.IsDemo())

	s.logger.Info(ctx, "score board ready",
		logger.String("origin", board.Origin),
		logger.Int("scores", len(board.Scores)),
		logger.Int("uniquePlayers", s.summary.UniquePlayers),
		logger.Bool("demo", board.IsDemo()),
	)
	return nil
}

// Stop marks the service as stopped. The loaded board is kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "score board service stopped")
}

// Query builds a snapshot for one filter state over the full list.
// Each call gets its own engine, so concurrent queries never share state.
func (s *Service) Query(ctx context.Context, mode, term string) types.Snapshot {
	s.mu.RLock()
	board, summary := s.board, s.summary
	s.mu.RUnlock()

	engine := filter.New(board.Scores)
	if mode != "" {
		engine.SetMode(mode)
	}
	engine.SetSearchTerm(term)

	snap := types.Snapshot{
		State:       engine.State(),
		View:        engine.CurrentView(),
		Stats:       summary,
		LastUpdated: board.LastUpdated,
		Origin:      board.Origin,
	}

	s.queries.Add(1)
	metrics.RecordViewSize(len(snap.View))
	if s.logger != nil {
		s.logger.Debug(ctx, "view computed",
			logger.String("mode", snap.State.Mode),
			logger.String("search", snap.State.SearchTerm),
			logger.Int("size", len(snap.View)),
		)
	}
	return snap
}

// Board returns a copy of the loaded board.
func (s *Service) Board() model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.board
	b.Scores = b.Scores.Clone()
	return b
}

// Summary returns the aggregates of the full list.
func (s *Service) Summary() stats.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"started": s.started,
		"queries": s.queries.Load(),
	}
	if !s.loadedAt.IsZero() {
		out["origin"] = s.board.Origin
		out["demo"] = s.board.IsDemo()
		out["totalScores"] = len(s.board.Scores)
		out["uniquePlayers"] = s.summary.UniquePlayers
		out["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return out
}
