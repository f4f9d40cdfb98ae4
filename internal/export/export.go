// Package export writes charts to standalone HTML files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/ui/templates"
)

const maxWriters = 4

// Demo categories and their colours.
var demoCategories = []struct {
	Name  string
	Color string
}{
	{"A", "#636efa"},
	{"B", "#ef553b"},
	{"C", "#00cc96"},
}

const demoPoints = 100

// DemoScatter is a 100-point scatter with standard normal coordinates, a
// random category per point and marker sizes in [10, 40).
func DemoScatter(seed uint64) charts.Scatter {
	rng := rand.New(rand.NewPCG(seed, demoPoints))

	series := make([]charts.Series, len(demoCategories))
	for i, c := range demoCategories {
		series[i] = charts.Series{Name: c.Name, Color: c.Color}
	}

	for range demoPoints {
		x := rng.NormFloat64()
		y := rng.NormFloat64()
		c := rng.IntN(len(demoCategories))
		size := rng.Float64()*30 + 10
		series[c].Points = append(series[c].Points, charts.Point{X: x, Y: y, Size: size})
	}

	s := charts.Scatter{Title: "Interactive Scatter Plot", XLabel: "X Axis", YLabel: "Y Axis"}
	for _, sr := range series {
		if len(sr.Points) > 0 {
			s.Series = append(s.Series, sr)
		}
	}
	return s
}

// Job is one chart to export.
type Job struct {
	Filename string
	Title    string
	Scatter  charts.Scatter
}

// Render builds the standalone HTML document for a scatter.
func Render(ctx context.Context, title string, s charts.Scatter, size charts.Size, now time.Time) ([]byte, error) {
	svg, err := charts.RenderScatter(s, size)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}

	var sb strings.Builder
	if err := templates.ExportDocument(title, svg, now).Render(ctx, &sb); err != nil {
		return nil, fmt.Errorf("render %s document: %w", title, err)
	}
	return []byte(sb.String()), nil
}

// WriteAll renders every job concurrently into dir and returns the written
// paths in job order.
func WriteAll(ctx context.Context, dir string, size charts.Size, jobs []Job, logger *slog.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWriters)

	paths := make([]string, len(jobs))
	now := time.Now()

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := Render(ctx, job.Title, job.Scatter, size, now)
			if err != nil {
				return err
			}

			path := filepath.Join(dir, job.Filename)
			if err := os.WriteFile(path, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			logger.Info("chart exported", "path", path, "points", job.Scatter.Len(), "bytes", len(doc))

			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
