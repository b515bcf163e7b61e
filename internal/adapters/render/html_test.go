package render_test

import (
	"bytes"
	"testing"

	"github.com/okian/cosmicboard/internal/adapters/render"
	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
	"github.com/okian/cosmicboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPageRenderer(t *testing.T) {
	Convey("Given a page renderer", t, func() {
		p, err := render.NewPageRenderer()
		So(err, ShouldBeNil)

		Convey("When a name carries markup", func() {
			view := model.ScoreList{{Name: `<script>alert(1)</script>`, Score: 10, Wave: 1, Mode: "normal", Date: "2024-01-15 14:30"}}
			var buf bytes.Buffer
			err := p.Render(&buf, types.Snapshot{
				State: filter.DefaultState(),
				View:  view,
				Stats: stats.Compute(view),
			})

			Convey("Then it is escaped", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldNotContainSubstring, "<script>alert(1)</script>")
				So(buf.String(), ShouldContainSubstring, "&lt;script&gt;")
				So(buf.String(), ShouldContainSubstring, `class="rank-1"`)
				So(buf.String(), ShouldContainSubstring, "15/01/24")
			})
		})

		Convey("When the view is empty under a search", func() {
			var buf bytes.Buffer
			err := p.Render(&buf, types.Snapshot{
				State: filter.State{Mode: model.ModeNormal, SearchTerm: "nobody"},
			})

			Convey("Then the empty message names the filters", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "Aucun score trouvé pour &#34;nobody&#34; en mode NORMAL")
			})

			Convey("And a clear link keeps the mode and drops the term", func() {
				So(buf.String(), ShouldContainSubstring, `<a class="clear-btn" href="/?mode=normal">effacer</a>`)
			})
		})

		Convey("When no search is active", func() {
			var buf bytes.Buffer
			So(p.Render(&buf, types.Snapshot{State: filter.State{Mode: model.ModeInfinite}}), ShouldBeNil)

			Convey("Then there is nothing to clear", func() {
				So(buf.String(), ShouldNotContainSubstring, "clear-btn")
			})
		})

		Convey("When the snapshot is demo data", func() {
			var buf bytes.Buffer
			So(p.Render(&buf, types.Snapshot{State: filter.DefaultState(), Origin: model.OriginDemo}), ShouldBeNil)

			Convey("Then the banner is shown and no timestamp", func() {
				So(buf.String(), ShouldContainSubstring, "démonstration")
				So(buf.String(), ShouldNotContainSubstring, "last-updated")
			})
		})
	})
}
