// Package model contains domain models passed between layers.
package model

// Known mode tags. Mode is an opaque string: values outside this set pass through untouched.
const (
	ModeAll      = "all"
	ModeNormal   = "normal"
	ModeInfinite = "infinite"
)

// OriginDemo marks a Board built from the built-in demo dataset.
const OriginDemo = "demo"

// ScoreEntry is one recorded game result.
// Name is raw player text; escaping belongs to whoever displays it.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Wave  int    `json:"wave"` // depth reached
	Mode  string `json:"mode"` // e.g. "normal", "infinite"
	Date  string `json:"date"` // not guaranteed to parse
}

// ScoreList is ordered by rank as delivered by the source. It is never re-sorted.
type ScoreList []ScoreEntry

// Clone returns an independent copy of the list. A nil list clones to an empty one.
func (l ScoreList) Clone() ScoreList {
	out := make(ScoreList, len(l))
	copy(out, l)
	return out
}

// Board is the outcome of a single load.
type Board struct {
	Scores ScoreList
	// LastUpdated is the payload's opaque timestamp; nil when none was provided.
	LastUpdated *string
	// Origin names the endpoint that produced the scores, or OriginDemo.
	Origin string
}

// IsDemo reports whether the board was built from the demo dataset.
func (b Board) IsDemo() bool {
	return b.Origin == OriginDemo
}
