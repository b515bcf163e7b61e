// Package stats computes aggregate figures over a full score list.
package stats

import "github.com/okian/cosmicboard/internal/domain/model"

// Summary holds the board-wide aggregates shown above the table.
type Summary struct {
	UniquePlayers int `json:"unique_players"`
	MaxScore      int `json:"max_score"`
	MaxWave       int `json:"max_wave"`
}

// Compute aggregates over the full, unfiltered list. Names are compared exactly
// (case-sensitive). Maxima never drop below zero, so an empty list yields a zero Summary.
func Compute(scores model.ScoreList) Summary {
	var s Summary
	names := make(map[string]struct{}, len(scores))
	for _, entry := range scores {
		names[entry.Name] = struct{}{}
		if entry.Score > s.MaxScore {
			s.MaxScore = entry.Score
		}
		if entry.Wave > s.MaxWave {
			s.MaxWave = entry.Wave
		}
	}
	s.UniquePlayers = len(names)
	return s
}
