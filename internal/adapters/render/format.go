// Package render turns board snapshots into something people can read:
// an HTML page, a terminal table, a PNG chart or an XLSX workbook.
// Display strings follow fr-FR conventions.
package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the fixed display locale.
var Locale = language.French //nolint:gochecknoglobals // fixed display locale

var printer = message.NewPrinter(Locale) //nolint:gochecknoglobals // printers are safe for concurrent use

// dateLayouts are tried in order when parsing record dates and timestamps.
var dateLayouts = []string{ //nolint:gochecknoglobals // read-only table
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const (
	shortDateLayout = "02/01/06"
	longStampLayout = "02/01/2006 15:04:05"
)

var medals = [...]string{"🥇", "🥈", "🥉"} //nolint:gochecknoglobals // podium glyphs

// FormatNumber groups digits the French way, e.g. 15 420.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate prints a record date as dd/mm/yy. Unparseable dates fall back to
// their first space-separated token, or the raw text when there is none.
func FormatDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format(shortDateLayout)
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

// FormatLastUpdated prints the payload timestamp, or "" when there is none.
func FormatLastUpdated(ts *string) string {
	if ts == nil {
		return ""
	}
	if t, ok := parseDate(*ts); ok {
		return t.Format(longStampLayout)
	}
	return *ts
}

// RankDisplay shows a medal for the podium and the plain number otherwise.
func RankDisplay(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return strconv.Itoa(rank)
}

// RowClass is the CSS class for podium rows.
func RowClass(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return "rank-" + strconv.Itoa(rank)
	}
	return ""
}

// ModeLabel is the upper-cased mode tag.
func ModeLabel(mode string) string {
	return strings.ToUpper(mode)
}

// EmptyMessage explains an empty view using whichever filters are active.
func EmptyMessage(st filter.State) string {
	msg := "Aucun score trouvé"
	if st.SearchActive() {
		msg += ` pour "` + st.SearchTerm + `"`
	}
	if st.ModeActive() {
		msg += " en mode " + ModeLabel(st.Mode)
	}
	return msg
}

// Row is one display-ready leaderboard line.
type Row struct {
	Rank      int    `json:"rank"`
	Medal     string `json:"-"`
	Class     string `json:"-"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	ScoreText string `json:"-"`
	Wave      int    `json:"wave"`
	Mode      string `json:"mode"`
	ModeLabel string `json:"-"`
	Date      string `json:"date"`
	DateText  string `json:"-"`
}

// BuildRows assigns positional ranks 1..n to a view.
func BuildRows(view model.ScoreList) []Row {
	rows := make([]Row, len(view))
	for i, e := range view {
		rank := i + 1
		rows[i] = Row{
			Rank:      rank,
			Medal:     RankDisplay(rank),
			Class:     RowClass(rank),
			Name:      e.Name,
			Score:     e.Score,
			ScoreText: FormatNumber(e.Score),
			Wave:      e.Wave,
			Mode:      e.Mode,
			ModeLabel: ModeLabel(e.Mode),
			Date:      e.Date,
			DateText:  FormatDate(e.Date),
		}
	}
	return rows
}
