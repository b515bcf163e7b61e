package api

import (
	"net/http"

	"github.com/okian/cosmicboard/internal/adapters/render"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// limiterStats adds the rate limiter counters to a StatsProvider.
type limiterStats struct {
	StatsProvider
	limiter *IPRateLimiter
}

func (s limiterStats) GetStats() map[string]interface{} {
	out := s.StatsProvider.GetStats()
	if out == nil {
		out = map[string]interface{}{}
	}
	out["rateLimit"] = s.limiter.GetStats()
	return out
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	deps          Dependencies
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies, statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{deps: deps, statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

type boardStatsResponse struct {
	stats.Summary
	LastUpdated     *string `json:"last_updated"`
	LastUpdatedText string  `json:"last_updated_text,omitempty"`
	Origin          string  `json:"origin"`
	Demo            bool    `json:"demo"`
}

// HandleBoardStats handles GET /api/stats. The aggregates ignore any filter.
func (h *StatsHandler) HandleBoardStats(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Query(r.Context(), model.ModeAll, "")
	writeJSON(w, http.StatusOK, boardStatsResponse{
		Summary:         snap.Stats,
		LastUpdated:     snap.LastUpdated,
		LastUpdatedText: render.FormatLastUpdated(snap.LastUpdated),
		Origin:          snap.Origin,
		Demo:            snap.Demo(),
	})
}
