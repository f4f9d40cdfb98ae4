package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"synth-dashboard/internal/dataset"
)

const maxWorkers = 4

// Registry holds every dashboard by name. It is filled once at startup and
// read-only afterwards.
type Registry struct {
	dashboards map[string]*Analytics
	names      []string
}

func NewRegistry(dashboards ...*Analytics) *Registry {
	r := &Registry{dashboards: make(map[string]*Analytics, len(dashboards))}
	for _, a := range dashboards {
		r.dashboards[a.Name()] = a
		r.names = append(r.names, a.Name())
	}
	slices.Sort(r.names)
	return r
}

// LoadRegistry generates the dataset of each variant concurrently.
func LoadRegistry(ctx context.Context, seed uint64, variants []dataset.Variant, logger *slog.Logger) (*Registry, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("no dashboard variants configured")
	}

	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate dashboard variant %q", v.Name)
		}
		seen[v.Name] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	var mu sync.Mutex
	loaded := make([]*Analytics, 0, len(variants))

	for _, v := range variants {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			ds, err := dataset.Generate(v, seed)
			if err != nil {
				return fmt.Errorf("generate %s: %w", v.Name, err)
			}

			logger.Info("dataset generated",
				"dashboard", v.Name,
				"records", ds.Len(),
				"duration", time.Since(start),
			)

			mu.Lock()
			loaded = append(loaded, NewAnalytics(ds, logger))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewRegistry(loaded...), nil
}

func (r *Registry) Get(name string) (*Analytics, bool) {
	a, ok := r.dashboards[name]
	return a, ok
}

// Names returns the dashboard names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func (r *Registry) All() []*Analytics {
	result := make([]*Analytics, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.dashboards[name])
	}
	return result
}

func (r *Registry) Stats() map[string]any {
	stats := make(map[string]any, len(r.names))
	for _, name := range r.names {
		stats[name] = r.dashboards[name].Stats()
	}
	return stats
}
