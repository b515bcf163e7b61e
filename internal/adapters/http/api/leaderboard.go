package api

import (
	"net/http"

	"github.com/okian/cosmicboard/internal/adapters/render"
)

// ScoresHandler handles filtered leaderboard requests.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

type scoresResponse struct {
	Mode         string       `json:"mode"`
	Search       string       `json:"search"`
	Count        int          `json:"count"`
	Scores       []render.Row `json:"scores"`
	LastUpdated  *string      `json:"last_updated"`
	Origin       string       `json:"origin"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}

// HandleGetScores handles GET /api/scores?mode=M&q=TERM requests.
// Ranks are positions in the filtered view.
func (h *ScoresHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	mode, term := filterParams(r)
	snap := h.deps.Query(r.Context(), mode, term)

	resp := scoresResponse{
		Mode:        snap.State.Mode,
		Search:      snap.State.SearchTerm,
		Count:       len(snap.View),
		Scores:      render.BuildRows(snap.View),
		LastUpdated: snap.LastUpdated,
		Origin:      snap.Origin,
	}
	if resp.Count == 0 {
		resp.EmptyMessage = render.EmptyMessage(snap.State)
	}
	writeJSON(w, http.StatusOK, resp)
}
