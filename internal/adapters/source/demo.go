package source

import "github.com/okian/cosmicboard/internal/domain/model"

// DemoScores returns the built-in dataset shown when no endpoint delivers.
func DemoScores() model.ScoreList {
	return model.ScoreList{
		{Name: "COSMIC_ACE", Score: 15420, Wave: 25, Mode: model.ModeInfinite, Date: "2024-01-15 14:30"},
		{Name: "STAR_WARRIOR", Score: 12890, Wave: 10, Mode: model.ModeNormal, Date: "2024-01-15 13:45"},
		{Name: "GALACTIC_HERO", Score: 11750, Wave: 22, Mode: model.ModeInfinite, Date: "2024-01-15 12:20"},
		{Name: "SPACE_COMMANDER", Score: 9340, Wave: 10, Mode: model.ModeNormal, Date: "2024-01-14 19:15"},
		{Name: "NEBULA_FIGHTER", Score: 8760, Wave: 18, Mode: model.ModeInfinite, Date: "2024-01-14 16:45"},
	}
}

// DemoBoard wraps DemoScores with no timestamp.
func DemoBoard() model.Board {
	return model.Board{Scores: DemoScores(), Origin: model.OriginDemo}
}
