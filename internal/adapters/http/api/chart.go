package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/cosmicboard/internal/adapters/render"
)

const defaultChartLimit = 10

// ChartHandler serves a PNG bar chart of the current view.
type ChartHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, maxLimit int) *ChartHandler {
	return &ChartHandler{deps: deps, maxLimit: maxLimit}
}

// HandleChart handles GET /chart.png?mode=M&q=TERM&limit=N requests.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart"
	n := defaultChartLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	mode, term := filterParams(r)
	snap := h.deps.Query(r.Context(), mode, term)

	png, err := render.ChartPNG(snap.View, n)
	switch {
	case errors.Is(err, render.ErrNothingToChart):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNothingFound, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrRender, err))
		return
	}
	writeBody(w, r, op, "image/png", png)
}
