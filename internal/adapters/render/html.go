package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// FilterModes are the buttons shown above the table, in order.
var FilterModes = []string{model.ModeAll, model.ModeNormal, model.ModeInfinite} //nolint:gochecknoglobals // fixed button order

type modeButton struct {
	Label  string
	Href   string
	Active bool
}

type pageData struct {
	Modes        []modeButton
	Mode         string
	Search       string
	ClearHref    string
	Players      string
	HighScore    string
	MaxWave      string
	Rows         []Row
	EmptyMessage string
	LastUpdated  string
	Demo         bool
}

// PageRenderer paints the HTML board. It is safe for concurrent use.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the embedded page template.
func NewPageRenderer() (*PageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/board.html")
	if err != nil {
		return nil, fmt.Errorf("parse board template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render writes the page for snap. Player names are escaped by html/template.
func (p *PageRenderer) Render(w io.Writer, snap types.Snapshot) error {
	data := pageData{
		Mode:        snap.State.Mode,
		Search:      snap.State.SearchTerm,
		Players:     FormatNumber(snap.Stats.UniquePlayers),
		HighScore:   FormatNumber(snap.Stats.MaxScore),
		MaxWave:     FormatNumber(snap.Stats.MaxWave),
		Rows:        BuildRows(snap.View),
		LastUpdated: FormatLastUpdated(snap.LastUpdated),
		Demo:        snap.Demo(),
	}
	if len(data.Rows) == 0 {
		data.EmptyMessage = EmptyMessage(snap.State)
	}
	if snap.State.SearchActive() {
		data.ClearHref = "/?" + url.Values{"mode": {snap.State.Mode}}.Encode()
	}
	for _, m := range FilterModes {
		q := url.Values{"mode": {m}}
		if snap.State.SearchActive() {
			q.Set("q", snap.State.SearchTerm)
		}
		data.Modes = append(data.Modes, modeButton{
			Label:  ModeLabel(m),
			Href:   "/?" + q.Encode(),
			Active: m == snap.State.Mode,
		})
	}
	return p.tmpl.ExecuteTemplate(w, "board.html", data)
}
