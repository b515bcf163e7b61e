package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToChart is returned for an empty view; go-chart needs at least one bar.
var ErrNothingToChart = errors.New("no scores to chart")

const (
	chartBarWidth   = 40
	chartBarSpacing = 24
	chartMinWidth   = 480
	chartHeight     = 400
)

var chartPalette = struct { //nolint:gochecknoglobals // fixed palette
	Background, Bar, Podium, Text drawing.Color
}{
	Background: drawing.ColorFromHex("0a0a2e"),
	Bar:        drawing.ColorFromHex("00d4ff"),
	Podium:     drawing.ColorFromHex("ffd700"),
	Text:       drawing.ColorFromHex("e0e0ff"),
}

// ChartPNG draws the first limit entries of view as a bar chart.
func ChartPNG(view model.ScoreList, limit int) ([]byte, error) {
	if limit > 0 && len(view) > limit {
		view = view[:limit]
	}
	if len(view) == 0 {
		return nil, ErrNothingToChart
	}

	bars := make([]chart.Value, len(view))
	top := 1.0
	for i, e := range view {
		fill := chartPalette.Bar
		if i < len(medals) {
			fill = chartPalette.Podium
		}
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d. %s", i+1, e.Name),
			Value: float64(e.Score),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
		if float64(e.Score) > top {
			top = float64(e.Score)
		}
	}

	width := len(view)*(chartBarWidth+chartBarSpacing) + 160
	if width < chartMinWidth {
		width = chartMinWidth
	}

	graph := chart.BarChart{
		Title:      "Cosmic Defender",
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		Background: chart.Style{
			FillColor: chartPalette.Background,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: chartPalette.Background},
		TitleStyle: chart.Style{
			FontColor: chartPalette.Text,
		},
		XAxis: chart.Style{
			FontColor:           chartPalette.Text,
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartPalette.Text},
			// Explicit range: go-chart rejects a zero-height range.
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatNumber(int(f))
				}
				return ""
			},
		},
		Bars: bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
