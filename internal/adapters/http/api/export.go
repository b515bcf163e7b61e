package api

import (
	"net/http"

	"github.com/okian/cosmicboard/internal/adapters/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the current view as a workbook.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /export.xlsx?mode=M&q=TERM requests.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export"
	mode, term := filterParams(r)
	snap := h.deps.Query(r.Context(), mode, term)

	data, err := render.WorkbookXLSX(snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="cosmic_defender_leaderboard.xlsx"`)
	writeBody(w, r, op, xlsxContentType, data)
}
