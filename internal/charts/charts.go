// Package charts renders the dashboard charts to SVG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"synth-dashboard/internal/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("charts: no data to plot")

type Size struct {
	Width  int
	Height int
}

var (
	ScatterSize = Size{Width: 620, Height: 420}
	TrendSize   = Size{Width: 900, Height: 300}
	BarSize     = Size{Width: 400, Height: 300}
)

const (
	trendColor    = "#3498db"
	trendDotColor = "#2980b9"
	barColor      = "#9b59b6"
)

// Point is one scatter marker; Size is the marker diameter in pixels.
type Point struct {
	X    float64
	Y    float64
	Size float64
}

type Series struct {
	Name   string
	Color  string
	Points []Point
}

type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

func (s Scatter) Len() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// SalesScatter plots sales against profit, one series per margin sign,
// with marker size following |margin|.
func SalesScatter(records []models.Record) Scatter {
	positive := Series{Name: models.MarginPositive, Color: models.ColorPositive}
	negative := Series{Name: models.MarginNegative, Color: models.ColorNegative}
	for _, r := range records {
		p := Point{X: r.Sales, Y: r.Profit, Size: r.MarkerSize}
		if r.MarginSign == models.MarginNegative {
			negative.Points = append(negative.Points, p)
		} else {
			positive.Points = append(positive.Points, p)
		}
	}

	s := Scatter{
		Title:  "Sales vs Profit (Size = |Margin %|)",
		XLabel: "Sales ($)",
		YLabel: "Profit ($)",
	}
	for _, series := range []Series{positive, negative} {
		if len(series.Points) > 0 {
			s.Series = append(s.Series, series)
		}
	}
	return s
}

// RenderScatter draws s as an SVG document.
func RenderScatter(s Scatter, size Size) ([]byte, error) {
	if s.Len() == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, 0, s.Len())
	ys := make([]float64, 0, s.Len())
	series := make([]chart.Series, 0, len(s.Series))
	for _, in := range s.Series {
		sx := make([]float64, len(in.Points))
		sy := make([]float64, len(in.Points))
		sizes := make([]float64, len(in.Points))
		for i, p := range in.Points {
			sx[i], sy[i], sizes[i] = p.X, p.Y, p.Size
		}
		xs = append(xs, sx...)
		ys = append(ys, sy...)

		color := hexColor(in.Color).WithAlpha(180)
		series = append(series, chart.ContinuousSeries{
			Name:    in.Name,
			XValues: sx,
			YValues: sy,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				StrokeColor: color,
				DotColor:    color,
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return sizes[index] / 2
				},
			},
		})
	}

	ch := chart.Chart{
		Title:      s.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: s.XLabel, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: s.YLabel, Range: paddedRange(ys)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return render(ch.Render)
}

// RenderTrend draws the bucketed sales as a line with markers.
func RenderTrend(points []models.TimePoint, bucket models.TimeBucket, size Size) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	xf := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Date, p.Sales
		xf[i] = chart.TimeToFloat64(p.Date)
	}

	title := "Daily Sales Trend"
	if bucket == models.BucketRaw {
		title = "Sales Trend"
	}

	ch := chart.Chart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          paddedRange(xf),
		},
		YAxis: chart.YAxis{Name: "Total Sales ($)", Range: paddedRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: hexColor(trendColor),
					StrokeWidth: 3,
					DotColor:    hexColor(trendDotColor),
					DotWidth:    3,
				},
			},
		},
	}

	return render(ch.Render)
}

// RenderGroupBar draws the mean profit per group as vertical bars from zero.
func RenderGroupBar(groups []models.GroupMean, groupBy string, size Size) ([]byte, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, len(groups))
	values := make([]float64, 0, len(groups))
	for i, g := range groups {
		bars[i] = chart.Value{
			Label: g.Key,
			Value: g.Profit,
			Style: chart.Style{
				FillColor:   hexColor(barColor),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
		values = append(values, g.Profit)
	}

	// Bars and gaps share the plot width, leaving room for the axis labels.
	barWidth := max(8, (size.Width-120)/(2*len(groups)))

	ch := chart.BarChart{
		Title:        fmt.Sprintf("Average Profit by %s", label(groupBy)),
		Width:        size.Width,
		Height:       size.Height,
		BarWidth:     barWidth,
		BarSpacing:   barWidth,
		Background:   chart.Style{Padding: chart.Box{Top: 50, Left: 10, Right: 10, Bottom: 10}},
		YAxis:        chart.YAxis{Range: zeroBasedRange(values)},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	return render(ch.Render)
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange returns an explicit axis range when every value is equal, which
// go-chart otherwise rejects as a zero-width range.
func paddedRange(values []float64) chart.Range {
	lo, hi := bounds(values)
	if lo != hi {
		return nil
	}
	pad := max(1, abs(lo)*0.1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// zeroBasedRange always spans zero so bars grow from the baseline.
func zeroBasedRange(values []float64) chart.Range {
	lo, hi := bounds(values)
	lo, hi = min(lo, 0), max(hi, 0)
	if lo == hi {
		hi = 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.05}
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func label(dimension string) string {
	if dimension == "" {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}
