// Command export writes standalone HTML scatter charts: a small demo plot and
// one sales scatter per configured dashboard.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/config"
	"synth-dashboard/internal/dataset"
	"synth-dashboard/internal/export"
	"synth-dashboard/internal/models"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/services"
)

const (
	demoFilename  = "interactive_scatter_plot.html"
	exportTimeout = time.Minute
)

// jobs builds the demo chart plus one full-selection scatter per dashboard.
func jobs(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]export.Job, error) {
	variants, err := dataset.Lookup(cfg.Data.Dashboards)
	if err != nil {
		return nil, err
	}

	registry, err := services.LoadRegistry(ctx, cfg.Data.Seed, variants, logger)
	if err != nil {
		return nil, err
	}

	result := []export.Job{{
		Filename: demoFilename,
		Title:    "Interactive Scatter Plot",
		Scatter:  export.DemoScatter(cfg.Data.Seed),
	}}
	for _, a := range registry.All() {
		views := a.Recompute(models.FilterState{})
		result = append(result, export.Job{
			Filename: fmt.Sprintf("%s_scatter.html", a.Name()),
			Title:    a.Title(),
			Scatter:  charts.SalesScatter(views.Filtered),
		})
	}
	return result, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	js, err := jobs(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	size := charts.Size{Width: cfg.Export.Width, Height: cfg.Export.Height}
	return export.WriteAll(ctx, cfg.Export.Dir, size, js, logger)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	paths, err := run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	logger.Info("export complete", "dir", cfg.Export.Dir, "files", paths)
}
