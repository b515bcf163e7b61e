// Package source resolves the score board from an ordered chain of endpoints,
// falling back to a built-in demo dataset when none of them delivers.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/pkg/logger"
	"github.com/okian/cosmicboard/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName            = "github.com/okian/cosmicboard/internal/adapters/source"
	defaultAttemptTimeout = 5 * time.Second
)

// Endpoint is one candidate location in the chain.
type Endpoint struct {
	Name     string
	Location string
}

// Source walks its endpoints strictly in order, one attempt each.
type Source struct {
	endpoints      []Endpoint
	fetcher        Fetcher
	attemptTimeout time.Duration
	logger         logger.Logger
	tracer         trace.Tracer
}

// New creates a Source over endpoints. The slice is copied.
func New(endpoints []Endpoint, opts ...Option) *Source {
	s := &Source{
		endpoints:      append([]Endpoint(nil), endpoints...),
		fetcher:        NewSchemeFetcher(nil, DefaultMaxBytes),
		attemptTimeout: defaultAttemptTimeout,
		tracer:         otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("source")
	}
	return s
}

// Endpoints returns a copy of the configured chain.
func (s *Source) Endpoints() []Endpoint {
	return append([]Endpoint(nil), s.endpoints...)
}

// Load returns the first structurally valid board in the chain, or the demo board.
// It never fails.
func (s *Source) Load(ctx context.Context) model.Board {
	start := time.Now()
	loadID := uuid.NewString()
	log := s.logger.With(logger.String("load_id", loadID))

	ctx, span := s.tracer.Start(ctx, "Source.Load", trace.WithAttributes(
		attribute.String("load_id", loadID),
		attribute.Int("endpoints", len(s.endpoints)),
	))
	defer span.End()
	defer func() {
		metrics.RecordSourceLoadDuration(float64(time.Since(start).Milliseconds()))
	}()

	for i, ep := range s.endpoints {
		if err := ctx.Err(); err != nil {
			log.Warn(ctx, "load canceled, abandoning endpoint chain",
				logger.Int("remaining", len(s.endpoints)-i),
				logger.Error(err))
			metrics.RecordSourceAttempt(ep.Name, metrics.OutcomeCanceled)
			break
		}

		board, err := s.attempt(ctx, ep)
		if err == nil {
			log.Info(ctx, "scores loaded",
				logger.String("endpoint", ep.Name),
				logger.Int("scores", len(board.Scores)),
				logger.Bool("has_timestamp", board.LastUpdated != nil),
				logger.Duration("elapsed", time.Since(start)))
			span.SetAttributes(attribute.String("origin", ep.Name))
			return board
		}

		log.Warn(ctx, "endpoint failed, trying next",
			logger.String("endpoint", ep.Name),
			logger.String("location", ep.Location),
			logger.Error(err))
	}

	log.Warn(ctx, "all endpoints failed, using demo scores")
	metrics.RecordSourceDemoLoad()
	span.SetAttributes(attribute.String("origin", model.OriginDemo))
	return DemoBoard()
}

func (s *Source) attempt(ctx context.Context, ep Endpoint) (model.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "Source.Attempt", trace.WithAttributes(
		attribute.String("endpoint", ep.Name),
	))
	defer span.End()

	began := time.Now()
	board, err := s.fetchAndDecode(ctx, ep)
	if err != nil {
		outcome := classify(err)
		metrics.RecordSourceAttempt(ep.Name, outcome)
		metrics.RecordErrorLatency("source", outcome, float64(time.Since(began).Milliseconds()))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return model.Board{}, err
	}
	metrics.RecordSourceAttempt(ep.Name, metrics.OutcomeSuccess)
	return board, nil
}

func (s *Source) fetchAndDecode(ctx context.Context, ep Endpoint) (model.Board, error) {
	body, err := s.fetcher.Fetch(ctx, ep.Location)
	if err != nil {
		return model.Board{}, err
	}
	scores, lastUpdated, err := Decode(body)
	if err != nil {
		return model.Board{}, err
	}
	return model.Board{Scores: scores, LastUpdated: lastUpdated, Origin: ep.Name}, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	case errors.Is(err, ErrMalformedPayload):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeUnreachable
	}
}
