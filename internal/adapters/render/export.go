package render

import (
	"fmt"

	"github.com/okian/cosmicboard/internal/domain/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetLeaderboard = "Leaderboard"
	SheetStats       = "Stats"
)

var leaderboardHeader = []interface{}{"rank", "name", "score", "wave", "mode", "date"} //nolint:gochecknoglobals // header row

// WorkbookXLSX exports the view and the aggregates of snap.
func WorkbookXLSX(snap types.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetLeaderboard); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetLeaderboard, "A1", &leaderboardHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range BuildRows(snap.View) {
		cell, err := excelize.CoordinatesToCellName(1, r.Rank+1)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Rank, r.Name, r.Score, r.Wave, r.Mode, r.Date}
		if err := f.SetSheetRow(SheetLeaderboard, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r.Rank, err)
		}
	}
	if err := f.SetColWidth(SheetLeaderboard, "B", "B", 24); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetStats); err != nil {
		return nil, fmt.Errorf("add stats sheet: %w", err)
	}
	statRows := [][]interface{}{
		{"unique_players", snap.Stats.UniquePlayers},
		{"max_score", snap.Stats.MaxScore},
		{"max_wave", snap.Stats.MaxWave},
		{"mode", snap.State.Mode},
		{"search", snap.State.SearchTerm},
		{"origin", snap.Origin},
		{"last_updated", FormatLastUpdated(snap.LastUpdated)},
	}
	for i := range statRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetStats, cell, &statRows[i]); err != nil {
			return nil, fmt.Errorf("write stats: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
