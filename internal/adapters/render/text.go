package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/cosmicboard/internal/domain/types"
)

// WriteTable prints snap as an aligned terminal table followed by the aggregates.
func WriteTable(w io.Writer, snap types.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if snap.Demo() {
		fmt.Fprintln(tw, "!! scores unavailable, showing demo data")
	}
	fmt.Fprintf(tw, "mode: %s\tsearch: %q\n", ModeLabel(snap.State.Mode), snap.State.SearchTerm)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tWAVE\tMODE\tDATE")

	rows := BuildRows(snap.View)
	if len(rows) == 0 {
		fmt.Fprintln(tw, EmptyMessage(snap.State))
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", r.Medal, r.Name, r.ScoreText, r.Wave, r.ModeLabel, r.DateText)
	}

	fmt.Fprintf(tw, "\nplayers: %s\tbest: %s\tmax wave: %s\n",
		FormatNumber(snap.Stats.UniquePlayers),
		FormatNumber(snap.Stats.MaxScore),
		FormatNumber(snap.Stats.MaxWave))
	if ts := FormatLastUpdated(snap.LastUpdated); ts != "" {
		fmt.Fprintf(tw, "updated: %s\n", ts)
	}
	return tw.Flush()
}
