package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/cosmicboard/internal/adapters/render"
	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
	"github.com/okian/cosmicboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func sampleSnapshot() types.Snapshot {
	view := model.ScoreList{
		{Name: "ACE", Score: 15420, Wave: 25, Mode: "infinite", Date: "2024-01-15 14:30"},
		{Name: "BOB", Score: 900, Wave: 3, Mode: "normal", Date: "bad"},
	}
	ts := "2024-01-16T09:00:00Z"
	return types.Snapshot{
		State:       filter.DefaultState(),
		View:        view,
		Stats:       stats.Compute(view),
		LastUpdated: &ts,
		Origin:      "primary",
	}
}

func TestWriteTable(t *testing.T) {
	Convey("Given a snapshot", t, func() {
		var buf bytes.Buffer
		So(render.WriteTable(&buf, sampleSnapshot()), ShouldBeNil)
		out := buf.String()

		Convey("Then rows and aggregates are printed", func() {
			So(out, ShouldContainSubstring, "ACE")
			So(out, ShouldContainSubstring, "🥇")
			So(out, ShouldContainSubstring, "INFINITE")
			So(out, ShouldContainSubstring, "updated: 16/01/2024 09:00:00")
			So(out, ShouldNotContainSubstring, "demo data")
		})
	})

	Convey("Given an empty demo snapshot", t, func() {
		var buf bytes.Buffer
		So(render.WriteTable(&buf, types.Snapshot{State: filter.State{Mode: "normal"}, Origin: model.OriginDemo}), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "demo data")
		So(buf.String(), ShouldContainSubstring, "Aucun score trouvé en mode NORMAL")
	})
}

func TestChartPNG(t *testing.T) {
	Convey("Given a view", t, func() {
		png, err := render.ChartPNG(sampleSnapshot().View, 10)

		Convey("Then a PNG is produced", func() {
			So(err, ShouldBeNil)
			So(len(png), ShouldBeGreaterThan, 8)
			So(string(png[1:4]), ShouldEqual, "PNG")
		})

		Convey("A single bar still renders", func() {
			_, err := render.ChartPNG(sampleSnapshot().View, 1)
			So(err, ShouldBeNil)
		})

		Convey("An empty view is refused", func() {
			_, err := render.ChartPNG(nil, 10)
			So(errors.Is(err, render.ErrNothingToChart), ShouldBeTrue)
		})
	})
}

func TestWorkbookXLSX(t *testing.T) {
	Convey("Given a snapshot exported to XLSX", t, func() {
		data, err := render.WorkbookXLSX(sampleSnapshot())
		So(err, ShouldBeNil)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Then the leaderboard sheet holds header and rows", func() {
			rows, err := f.GetRows(render.SheetLeaderboard)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
			So(strings.Join(rows[0], ","), ShouldEqual, "rank,name,score,wave,mode,date")
			So(rows[1][1], ShouldEqual, "ACE")
			So(rows[1][2], ShouldEqual, "15420")
		})

		Convey("And the stats sheet holds the aggregates", func() {
			rows, err := f.GetRows(render.SheetStats)
			So(err, ShouldBeNil)
			So(rows[0], ShouldResemble, []string{"unique_players", "2"})
			So(rows[1], ShouldResemble, []string{"max_score", "15420"})
		})
	})
}
