package services

import (
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"synth-dashboard/internal/dataset"
	"synth-dashboard/internal/models"
)

// Recompute filters the dataset with f and aggregates the surviving rows.
// It reads nothing but its arguments, so equal inputs give equal views.
func Recompute(ds *dataset.Dataset, f models.FilterState) models.DerivedViews {
	v := ds.Variant()

	filtered := make([]models.Record, 0)
	for _, r := range ds.All() {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}

	return models.DerivedViews{
		Filtered: filtered,
		Trend:    SumSalesByTime(filtered, v.Bucket),
		Groups:   MeanProfitBy(filtered, v.GroupBy),
		GroupBy:  v.GroupBy,
		Bucket:   v.Bucket,
	}
}

// SumSalesByTime sums sales per bucket in ascending time order. Day buckets
// cover every calendar day between the first and last row, so days without
// rows show up with a zero total.
func SumSalesByTime(records []models.Record, bucket models.TimeBucket) []models.TimePoint {
	sums := make(map[time.Time]float64)
	for _, r := range records {
		sums[bucketKey(r.Date, bucket)] += r.Sales
	}

	keys := slices.SortedFunc(maps.Keys(sums), func(a, b time.Time) int { return a.Compare(b) })
	result := make([]models.TimePoint, 0, len(keys))
	if len(keys) == 0 {
		return result
	}

	if bucket == models.BucketDay {
		last := keys[len(keys)-1]
		for day := keys[0]; !day.After(last); day = day.AddDate(0, 0, 1) {
			result = append(result, models.TimePoint{Date: day, Sales: sums[day]})
		}
		return result
	}

	for _, k := range keys {
		result = append(result, models.TimePoint{Date: k, Sales: sums[k]})
	}
	return result
}

func bucketKey(t time.Time, bucket models.TimeBucket) time.Time {
	t = t.UTC()
	if bucket == models.BucketDay {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t
}

// MeanProfitBy averages profit per value of dimension, ordered by key.
func MeanProfitBy(records []models.Record, dimension string) []models.GroupMean {
	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		key := r.Dimension(dimension)
		if groups[key] == nil {
			groups[key] = &acc{}
		}
		groups[key].sum += r.Profit
		groups[key].count++
	}

	result := make([]models.GroupMean, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		g := groups[key]
		result = append(result, models.GroupMean{
			Key:    key,
			Profit: g.sum / float64(g.count),
			Count:  g.count,
		})
	}
	return result
}

// Analytics serves one dashboard: it owns the dataset reference and counts
// recomputes for the stats endpoint.
type Analytics struct {
	data       *dataset.Dataset
	createdAt  time.Time
	recomputes atomic.Int64
	logger     *slog.Logger
}

func NewAnalytics(data *dataset.Dataset, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		data:      data,
		createdAt: time.Now(),
		logger:    logger.With("dashboard", data.Variant().Name),
	}
}

func (a *Analytics) Name() string { return a.data.Variant().Name }

func (a *Analytics) Title() string { return a.data.Variant().Title }

func (a *Analytics) Variant() dataset.Variant { return a.data.Variant() }

func (a *Analytics) Dataset() *dataset.Dataset { return a.data }

func (a *Analytics) Options() models.Options { return a.data.Options() }

// Recompute runs the recompute step against this dashboard's dataset.
func (a *Analytics) Recompute(f models.FilterState) models.DerivedViews {
	start := time.Now()
	views := Recompute(a.data, f)
	a.recomputes.Add(1)

	a.logger.Debug("recompute complete",
		"regions", len(f.Regions),
		"categories", len(f.Categories),
		"rows", len(views.Filtered),
		"duration", time.Since(start),
	)
	return views
}

// Stats is used by the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	opts := a.data.Options()
	return map[string]any{
		"record_count": a.data.Len(),
		"created_at":   a.createdAt,
		"recomputes":   a.recomputes.Load(),
		"regions":      len(opts.Regions),
		"categories":   len(opts.Categories),
		"sale_min":     opts.SaleRange.Low,
		"sale_max":     opts.SaleRange.High,
		"bucket":       a.data.Variant().Bucket,
		"group_by":     a.data.Variant().GroupBy,
	}
}
