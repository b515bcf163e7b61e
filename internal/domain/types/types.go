// Package types contains common types used across the application
package types

import (
	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
)

// Snapshot is everything a renderer needs to paint the board once.
type Snapshot struct {
	State       filter.State
	View        model.ScoreList
	Stats       stats.Summary
	LastUpdated *string
	Origin      string
}

// Demo reports whether the snapshot was built from the demo dataset.
func (s Snapshot) Demo() bool {
	return s.Origin == model.OriginDemo
}
