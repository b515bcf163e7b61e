package service_test

import (
	"context"
	"sync"
	"testing"

	service "github.com/okian/cosmicboard/internal/app"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func fixedBoard() model.Board {
	ts := "2024-02-01T10:00:00Z"
	return model.Board{
		Scores: model.ScoreList{
			{Name: "Ace", Score: 300, Wave: 9, Mode: model.ModeInfinite},
			{Name: "bob", Score: 200, Wave: 4, Mode: model.ModeNormal},
			{Name: "Ace", Score: 150, Wave: 12, Mode: model.ModeNormal},
			{Name: "Carla", Score: 90, Wave: 2, Mode: "hardcore"},
		},
		LastUpdated: &ts,
		Origin:      "primary",
	}
}

type countingLoader struct {
	mu    sync.Mutex
	calls int
	board model.Board
}

func (l *countingLoader) Load(context.Context) model.Board {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.board
}

func TestService_Start(t *testing.T) {
	Convey("Given a service without a loader", t, func() {
		svc := service.New()

		Convey("Then Start reports it", func() {
			So(svc.Start(context.Background()), ShouldEqual, service.ErrNoLoader)
		})
	})

	Convey("Given a service with a loader", t, func() {
		loader := &countingLoader{board: fixedBoard()}
		svc := service.New(service.WithLoader(loader))
		defer svc.Stop()

		Convey("When starting twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the board is loaded once", func() {
				So(loader.calls, ShouldEqual, 1)
				So(svc.Board().Origin, ShouldEqual, "primary")
			})

			Convey("And the summary covers the full list", func() {
				sum := svc.Summary()
				So(sum.UniquePlayers, ShouldEqual, 3)
				So(sum.MaxScore, ShouldEqual, 300)
				So(sum.MaxWave, ShouldEqual, 12)
			})

			Convey("And stats are exposed", func() {
				st := svc.GetStats()
				So(st["started"], ShouldEqual, true)
				So(st["totalScores"], ShouldEqual, 4)
				So(st["demo"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Query(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithLoader(service.LoaderFunc(func(context.Context) model.Board {
			return fixedBoard()
		})))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		ctx := context.Background()

		Convey("An empty mode means all", func() {
			snap := svc.Query(ctx, "", "")
			So(snap.State.Mode, ShouldEqual, model.ModeAll)
			So(len(snap.View), ShouldEqual, 4)
			So(*snap.LastUpdated, ShouldEqual, "2024-02-01T10:00:00Z")
		})

		Convey("Mode and search are conjunctive and keep order", func() {
			snap := svc.Query(ctx, model.ModeNormal, "A")
			So(len(snap.View), ShouldEqual, 1)
			So(snap.View[0].Score, ShouldEqual, 150)
		})

		Convey("Stats ignore the filter", func() {
			snap := svc.Query(ctx, "unknown", "")
			So(len(snap.View), ShouldEqual, 0)
			So(snap.Stats.UniquePlayers, ShouldEqual, 3)
		})

		Convey("Mutating a snapshot leaves the board intact", func() {
			snap := svc.Query(ctx, "", "")
			snap.View[0].Name = "changed"
			So(svc.Board().Scores[0].Name, ShouldEqual, "Ace")
		})

		Convey("Concurrent queries are independent", func() {
			var wg sync.WaitGroup
			results := make([]int, 20)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					mode := model.ModeNormal
					if i%2 == 0 {
						mode = model.ModeInfinite
					}
					results[i] = len(svc.Query(ctx, mode, "").View)
				}(i)
			}
			wg.Wait()
			for i, n := range results {
				if i%2 == 0 {
					So(n, ShouldEqual, 1)
				} else {
					So(n, ShouldEqual, 2)
				}
			}
		})
	})
}
