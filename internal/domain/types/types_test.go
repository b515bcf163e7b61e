package types_test

import (
	"testing"

	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	types "github.com/okian/cosmicboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSnapshot(t *testing.T) {
	Convey("Given a snapshot built from the demo dataset", t, func() {
		snap := types.Snapshot{State: filter.DefaultState(), Origin: model.OriginDemo}

		Convey("Then it should report Demo", func() {
			So(snap.Demo(), ShouldBeTrue)
			So(snap.LastUpdated, ShouldBeNil)
		})
	})

	Convey("Given a snapshot from a real endpoint", t, func() {
		ts := "2024-05-01T10:00:00Z"
		snap := types.Snapshot{Origin: "local", LastUpdated: &ts}

		Convey("Then it should not report Demo", func() {
			So(snap.Demo(), ShouldBeFalse)
		})
	})

	Convey("Given a zero snapshot", t, func() {
		var snap types.Snapshot

		Convey("Then it has no view and no origin", func() {
			So(snap.View, ShouldBeNil)
			So(snap.Origin, ShouldEqual, "")
			So(snap.Demo(), ShouldBeFalse)
		})
	})
}
