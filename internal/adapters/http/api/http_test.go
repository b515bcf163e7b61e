package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/cosmicboard/internal/adapters/http/api"
	service "github.com/okian/cosmicboard/internal/app"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testBoard() model.Board {
	ts := "2024-01-16T09:00:00Z"
	return model.Board{
		Scores: model.ScoreList{
			{Name: "COSMIC_ACE", Score: 15420, Wave: 25, Mode: "infinite", Date: "2024-01-15 14:30"},
			{Name: "STAR_WARRIOR", Score: 12890, Wave: 10, Mode: "normal", Date: "2024-01-15 13:45"},
			{Name: "<b>bold</b>", Score: 11750, Wave: 22, Mode: "infinite", Date: "2024-01-15 12:20"},
			{Name: "star_child", Score: 100, Wave: 1, Mode: "normal", Date: "2024-01-14 19:15"},
		},
		LastUpdated: &ts,
		Origin:      "primary",
	}
}

func newTestServer(ctx context.Context, board model.Board, rl *api.RateLimitConfig) *httptest.Server {
	svc := service.New(service.WithLoader(service.LoaderFunc(func(context.Context) model.Board { return board })))
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}
	if rl == nil {
		rl = &api.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}
	}
	router, err := api.NewRouter(ctx, api.RouterConfig{
		Deps:            svc,
		Stats:           svc,
		RateLimitConfig: rl,
		ChartMaxLimit:   20,
		DisableLogging:  true,
	})
	if err != nil {
		panic(err)
	}
	return httptest.NewServer(router)
}

type scoresBody struct {
	Mode   string `json:"mode"`
	Search string `json:"search"`
	Count  int    `json:"count"`
	Scores []struct {
		Rank  int    `json:"rank"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"scores"`
	LastUpdated  *string `json:"last_updated"`
	Origin       string  `json:"origin"`
	EmptyMessage string  `json:"empty_message"`
}

func getJSON(url string, v any) int {
	resp, err := http.Get(url)
	if err != nil {
		panic(err)
	}
	defer func() { _ = resp.Body.Close() }()
	if v != nil {
		_ = json.NewDecoder(resp.Body).Decode(v)
	}
	return resp.StatusCode
}

func TestScoresRoute(t *testing.T) {
	Convey("Given a running board server", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), nil)
		defer ts.Close()

		Convey("When requesting every score", func() {
			var body scoresBody
			code := getJSON(ts.URL+"/api/scores", &body)

			Convey("Then the full list is returned in source order", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(body.Mode, ShouldEqual, "all")
				So(body.Count, ShouldEqual, 4)
				So(body.Scores[0].Rank, ShouldEqual, 1)
				So(body.Scores[3].Name, ShouldEqual, "star_child")
				So(*body.LastUpdated, ShouldEqual, "2024-01-16T09:00:00Z")
				So(body.Origin, ShouldEqual, "primary")
				So(body.EmptyMessage, ShouldEqual, "")
			})
		})

		Convey("When filtering by mode and search", func() {
			var body scoresBody
			code := getJSON(ts.URL+"/api/scores?mode=normal&q=STAR", &body)

			Convey("Then ranks are positions in the view", func() {
				So(code, ShouldEqual, http.StatusOK)
				So(body.Count, ShouldEqual, 2)
				So(body.Scores[0].Name, ShouldEqual, "STAR_WARRIOR")
				So(body.Scores[1].Name, ShouldEqual, "star_child")
				So(body.Scores[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When nothing matches", func() {
			var body scoresBody
			getJSON(ts.URL+"/api/scores?mode=infinite&q=zzz", &body)

			Convey("Then the empty message names both filters", func() {
				So(body.Count, ShouldEqual, 0)
				So(body.Scores, ShouldBeEmpty)
				So(body.EmptyMessage, ShouldEqual, `Aucun score trouvé pour "zzz" en mode INFINITE`)
			})
		})
	})
}

func TestStatsRoutes(t *testing.T) {
	Convey("Given a running board server", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), nil)
		defer ts.Close()

		Convey("Board stats cover the full list", func() {
			var body map[string]any
			code := getJSON(ts.URL+"/api/stats", &body)
			So(code, ShouldEqual, http.StatusOK)
			So(body["unique_players"], ShouldEqual, 4.0)
			So(body["max_score"], ShouldEqual, 15420.0)
			So(body["max_wave"], ShouldEqual, 25.0)
			So(body["demo"], ShouldEqual, false)
			So(body["last_updated_text"], ShouldEqual, "16/01/2024 09:00:00")
		})

		Convey("Service stats are exposed", func() {
			var body map[string]any
			code := getJSON(ts.URL+"/stats", &body)
			So(code, ShouldEqual, http.StatusOK)
			So(body["started"], ShouldEqual, true)
			So(body["origin"], ShouldEqual, "primary")

			limits, ok := body["rateLimit"].(map[string]any)
			So(ok, ShouldBeTrue)
			So(limits["allowed"], ShouldBeGreaterThanOrEqualTo, 1.0)
			So(limits["rejected"], ShouldEqual, 0.0)
		})

		Convey("Metrics are exposed on /healthz", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})
	})

	Convey("Given a board built from demo data", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, model.Board{Origin: model.OriginDemo}, nil)
		defer ts.Close()

		var body map[string]any
		getJSON(ts.URL+"/api/stats", &body)
		So(body["demo"], ShouldEqual, true)
		So(body["last_updated"], ShouldBeNil)
		So(body["unique_players"], ShouldEqual, 0.0)
	})
}

func TestPageChartExport(t *testing.T) {
	Convey("Given a running board server", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), nil)
		defer ts.Close()

		Convey("The page escapes player names", func() {
			resp, err := http.Get(ts.URL + "/?mode=infinite")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			raw, err := io.ReadAll(resp.Body)
			So(err, ShouldBeNil)
			page := string(raw)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(page, ShouldContainSubstring, "&lt;b&gt;bold&lt;/b&gt;")
			So(page, ShouldNotContainSubstring, "STAR_WARRIOR")
		})

		Convey("The chart is a PNG", func() {
			resp, err := http.Get(ts.URL + "/chart.png?limit=3")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldEqual, "image/png")
		})

		Convey("Chart limits are validated", func() {
			var e map[string]string
			So(getJSON(ts.URL+"/chart.png?limit=0", &e), ShouldEqual, http.StatusBadRequest)
			So(e["code"], ShouldEqual, "bad_request")
			So(getJSON(ts.URL+"/chart.png?limit=abc", nil), ShouldEqual, http.StatusBadRequest)
			So(getJSON(ts.URL+"/chart.png?limit=21", &e), ShouldEqual, http.StatusBadRequest)
			So(e["code"], ShouldEqual, "limit_exceeded")
		})

		Convey("An empty view has nothing to chart", func() {
			var e map[string]string
			So(getJSON(ts.URL+"/chart.png?mode=hardcore", &e), ShouldEqual, http.StatusNotFound)
			So(e["code"], ShouldEqual, "not_found")
		})

		Convey("The export is an attachment", func() {
			resp, err := http.Get(ts.URL + "/export.xlsx?q=star")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, "attachment")
		})

		Convey("Docs and assets are mounted", func() {
			So(getJSON(ts.URL+"/api-docs", nil), ShouldEqual, http.StatusOK)
			So(getJSON(ts.URL+"/openapi.yaml", nil), ShouldEqual, http.StatusOK)
			So(getJSON(ts.URL+"/static/style.css", nil), ShouldEqual, http.StatusOK)
		})

		Convey("Unknown routes and methods answer JSON errors", func() {
			var e map[string]string
			So(getJSON(ts.URL+"/nope", &e), ShouldEqual, http.StatusNotFound)
			So(e["code"], ShouldEqual, "not_found")

			resp, err := http.Post(ts.URL+"/api/scores", "application/json", nil)
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a server with a tight rate limit", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), &api.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})
		defer ts.Close()

		Convey("Then the second request is rejected", func() {
			So(getJSON(ts.URL+"/api/scores", nil), ShouldEqual, http.StatusOK)
			var e map[string]string
			So(getJSON(ts.URL+"/api/scores", &e), ShouldEqual, http.StatusTooManyRequests)
			So(e["code"], ShouldEqual, "rate_limited")
		})
	})

	Convey("Given filtered view requests", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), nil)
		defer ts.Close()

		So(getJSON(ts.URL+"/api/scores?mode=normal&q=star", nil), ShouldEqual, http.StatusOK)
		So(getJSON(ts.URL+"/chart.png?limit=abc", nil), ShouldEqual, http.StatusBadRequest)

		resp, err := http.Get(ts.URL + "/healthz")
		So(err, ShouldBeNil)
		defer func() { _ = resp.Body.Close() }()
		raw, err := io.ReadAll(resp.Body)
		So(err, ShouldBeNil)
		exposition := string(raw)

		Convey("Then request, filter and error metrics are recorded per route", func() {
			So(exposition, ShouldContainSubstring, `cosmic_board_view_queries_total{filters="both"}`)
			So(exposition, ShouldContainSubstring, `cosmic_board_http_requests_total{endpoint="scores",method="GET",status_code="200"}`)
			So(exposition, ShouldContainSubstring, `cosmic_board_errors_by_endpoint_total{endpoint="chart",error_type="client_error",method="GET"}`)
		})
	})

	Convey("Given a cross-origin request", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ts := newTestServer(ctx, testBoard(), nil)
		defer ts.Close()

		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/scores", nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		resp, err := http.DefaultClient.Do(req)
		So(err, ShouldBeNil)
		defer func() { _ = resp.Body.Close() }()

		Convey("Then CORS headers are set", func() {
			So(resp.Header.Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})
	})
}

func TestClientIP(t *testing.T) {
	Convey("Given requests from different hops", t, func() {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		So(api.ClientIP(r), ShouldEqual, "10.0.0.1")

		r.Header.Set("X-Real-IP", "10.0.0.2")
		So(api.ClientIP(r), ShouldEqual, "10.0.0.2")

		r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
		So(api.ClientIP(r), ShouldEqual, "10.0.0.3")
	})
}

func TestErrors(t *testing.T) {
	Convey("Given op-tagged errors", t, func() {
		cause := errors.New("boom")

		So(errors.Is(api.NewKind("op", api.ErrBadRequest), api.ErrBadRequest), ShouldBeTrue)
		So(api.NewKind("op", api.ErrBadRequest).Error(), ShouldEqual, "op: bad request")

		wk := api.WrapKind("op", api.ErrRender, cause)
		So(errors.Is(wk, api.ErrRender), ShouldBeTrue)
		So(errors.Is(wk, cause), ShouldBeTrue)
		So(wk.Error(), ShouldEqual, "op: render failed: boom")

		So(api.Wrap("op", nil), ShouldBeNil)
		So(errors.Is(api.Wrap("op", cause), cause), ShouldBeTrue)
	})
}
