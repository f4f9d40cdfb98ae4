package dataset

import (
	"fmt"
	"slices"
	"time"

	"synth-dashboard/internal/models"
)

var (
	Regions    = []string{"North", "South", "East", "West"}
	Categories = []string{"Electronics", "Clothing", "Food", "Books"}
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Variant holds the parameters that distinguish one dashboard's data from
// another's.
type Variant struct {
	Name       string
	Title      string
	Rows       int
	SaleScale  float64
	ProfitMean float64
	ProfitStd  float64
	Start      time.Time
	Step       time.Duration
	Bucket     models.TimeBucket
	GroupBy    string
}

// Sales is the half-daily dataset: daily sales trend and average profit per
// category.
func Sales() Variant {
	return Variant{
		Name:       "sales",
		Title:      "Interactive Sales Dashboard",
		Rows:       1000,
		SaleScale:  800,
		ProfitMean: 180,
		ProfitStd:  120,
		Start:      epoch,
		Step:       12 * time.Hour,
		Bucket:     models.BucketDay,
		GroupBy:    models.DimensionCategory,
	}
}

// Regional is the daily dataset: sales per raw date and average profit per
// region.
func Regional() Variant {
	return Variant{
		Name:       "regional",
		Title:      "Regional Sales Dashboard",
		Rows:       500,
		SaleScale:  1000,
		ProfitMean: 200,
		ProfitStd:  100,
		Start:      epoch,
		Step:       24 * time.Hour,
		Bucket:     models.BucketRaw,
		GroupBy:    models.DimensionRegion,
	}
}

// Variants returns every built-in variant.
func Variants() []Variant {
	return []Variant{Sales(), Regional()}
}

// Lookup resolves variant names in the given order.
func Lookup(names []string) ([]Variant, error) {
	builtin := Variants()
	result := make([]Variant, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(builtin, func(v Variant) bool { return v.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown dashboard %q", name)
		}
		result = append(result, builtin[i])
	}
	return result, nil
}

func (v Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant name cannot be empty")
	}
	if v.Rows <= 0 {
		return fmt.Errorf("variant %s: rows must be positive, got %d", v.Name, v.Rows)
	}
	if v.SaleScale <= 0 {
		return fmt.Errorf("variant %s: sale scale must be positive", v.Name)
	}
	if v.ProfitStd < 0 {
		return fmt.Errorf("variant %s: profit stddev cannot be negative", v.Name)
	}
	if v.Step <= 0 {
		return fmt.Errorf("variant %s: step must be positive", v.Name)
	}
	switch v.Bucket {
	case models.BucketDay, models.BucketRaw:
	default:
		return fmt.Errorf("variant %s: unknown time bucket %q", v.Name, v.Bucket)
	}
	switch v.GroupBy {
	case models.DimensionRegion, models.DimensionCategory:
	default:
		return fmt.Errorf("variant %s: unknown group dimension %q", v.Name, v.GroupBy)
	}
	return nil
}
