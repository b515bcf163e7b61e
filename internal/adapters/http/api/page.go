package api

import (
	"bytes"
	"net/http"

	"github.com/okian/cosmicboard/internal/adapters/render"
)

// PageHandler serves the HTML board.
type PageHandler struct {
	deps Dependencies
	page *render.PageRenderer
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps Dependencies, page *render.PageRenderer) *PageHandler {
	return &PageHandler{deps: deps, page: page}
}

// HandlePage handles GET /?mode=M&q=TERM requests.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.page"
	mode, term := filterParams(r)
	snap := h.deps.Query(r.Context(), mode, term)

	var buf bytes.Buffer
	if err := h.page.Render(&buf, snap); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrRender, err))
		return
	}
	writeBody(w, r, op, "text/html; charset=utf-8", buf.Bytes())
}
