// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/okian/cosmicboard/internal/adapters/render"
	"github.com/okian/cosmicboard/internal/domain/types"
	"github.com/okian/cosmicboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Query returns the view and aggregates for one mode and search term.
	Query(ctx context.Context, mode, term string) types.Snapshot
}

// Server wires HTTP routes for the board.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	scoresHandler *ScoresHandler
	pageHandler   *PageHandler
	chartHandler  *ChartHandler
	exportHandler *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, page *render.PageRenderer, chartMaxLimit int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps, statsProvider),
		scoresHandler: NewScoresHandler(deps),
		pageHandler:   NewPageHandler(deps, page),
		chartHandler:  NewChartHandler(deps, chartMaxLimit),
		exportHandler: NewExportHandler(deps),
	}
}

// Register attaches all board routes to r.
func (s *Server) Register(r chi.Router) {
	r.With(Metrics("page"), ViewQuery).Get("/", s.pageHandler.HandlePage)
	r.With(Metrics("healthz")).Get("/healthz", s.healthHandler.HandleHealth)
	r.With(Metrics("stats")).Get("/stats", s.statsHandler.HandleStats)
	r.With(Metrics("chart"), ViewQuery).Get("/chart.png", s.chartHandler.HandleChart)
	r.With(Metrics("export"), ViewQuery).Get("/export.xlsx", s.exportHandler.HandleExport)

	r.Route("/api", func(r chi.Router) {
		r.With(Metrics("scores"), ViewQuery).Get("/scores", s.scoresHandler.HandleGetScores)
		r.With(Metrics("board_stats")).Get("/stats", s.statsHandler.HandleBoardStats)
	})
}

// filterParams reads the mode and search term shared by every view route.
func filterParams(r *http.Request) (mode, term string) {
	q := r.URL.Query()
	return q.Get("mode"), q.Get("q")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeBody sends a non-JSON payload. Headers are gone once writing starts,
// so a failed write is only logged.
func writeBody(w http.ResponseWriter, r *http.Request, op, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		logger.Named("api").Debug(r.Context(), "response write failed", logger.Error(Wrap(op, err)))
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
