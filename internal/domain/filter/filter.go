// Package filter computes the visible subset of a score list for a given mode and search term.
package filter

import (
	"strings"

	"github.com/okian/cosmicboard/internal/domain/model"
)

// State is the pair (mode, search term) controlling which scores are visible.
type State struct {
	Mode       string `json:"mode"`
	SearchTerm string `json:"search"`
}

// DefaultState is the state every engine starts with.
func DefaultState() State {
	return State{Mode: model.ModeAll}
}

// ModeActive reports whether the mode filter restricts the view.
func (s State) ModeActive() bool {
	return s.Mode != model.ModeAll
}

// SearchActive reports whether the search filter restricts the view.
func (s State) SearchActive() bool {
	return s.SearchTerm != ""
}

// Filters names the active filters: "none", "mode", "search" or "both".
func (s State) Filters() string {
	switch {
	case s.ModeActive() && s.SearchActive():
		return "both"
	case s.ModeActive():
		return "mode"
	case s.SearchActive():
		return "search"
	default:
		return "none"
	}
}

// Engine owns a full score list and the current State.
// It is not safe for concurrent use; give each session or request its own engine.
type Engine struct {
	scores model.ScoreList
	state  State
}

// New creates an engine over scores with DefaultState.
func New(scores model.ScoreList) *Engine {
	return &Engine{
		scores: scores.Clone(),
		state:  DefaultState(),
	}
}

// SetMode replaces the mode. Unknown modes are accepted and simply match nothing.
func (e *Engine) SetMode(mode string) {
	e.state.Mode = mode
}

// SetSearchTerm stores term verbatim; case folding happens at match time.
func (e *Engine) SetSearchTerm(term string) {
	e.state.SearchTerm = term
}

// ClearSearch drops the search term.
func (e *Engine) ClearSearch() {
	e.state.SearchTerm = ""
}

// Reset replaces the full list wholesale, keeping the current state.
func (e *Engine) Reset(scores model.ScoreList) {
	e.scores = scores.Clone()
}

// State returns the current filter state.
func (e *Engine) State() State {
	return e.state
}

// Scores returns a copy of the full, unfiltered list.
func (e *Engine) Scores() model.ScoreList {
	return e.scores.Clone()
}

// CurrentView recomputes the visible list from scratch on every call.
func (e *Engine) CurrentView() model.ScoreList {
	return Apply(e.scores, e.state)
}

// Apply returns the entries of scores matching state, in their original order.
// Mode matches by exact string equality unless it is model.ModeAll; the search term
// matches as a case-insensitive substring of the name. Both must hold.
// The result is never nil.
func Apply(scores model.ScoreList, state State) model.ScoreList {
	needle := strings.ToLower(state.SearchTerm)
	out := make(model.ScoreList, 0, len(scores))
	for _, entry := range scores {
		if state.ModeActive() && entry.Mode != state.Mode {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Name), needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
