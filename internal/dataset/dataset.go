package dataset

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"synth-dashboard/internal/models"
)

const (
	minMarkerSize = 5
	maxMarkerSize = 40
)

// recordNamespace scopes the deterministic record ids.
var recordNamespace = uuid.MustParse("6f1c1c1e-3f7a-4b59-9a0e-2f6d3c7b8a41")

// Dataset is the immutable table behind one dashboard. Build it with
// Generate or FromRecords; nothing mutates it afterwards.
type Dataset struct {
	variant    Variant
	records    []models.Record
	regions    []string
	categories []string
	sales      models.Range
}

// Generate fabricates v.Rows records from a PCG source seeded with seed.
// The same (variant, seed) pair always yields the same dataset.
func Generate(v Variant, seed uint64) (*Dataset, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, uint64(v.Rows)))
	records := make([]models.Record, v.Rows)
	for i := range records {
		records[i] = models.Record{
			ID:       recordID(v.Name, seed, i),
			Sales:    rng.ExpFloat64() * v.SaleScale,
			Profit:   rng.NormFloat64()*v.ProfitStd + v.ProfitMean,
			Region:   Regions[rng.IntN(len(Regions))],
			Category: Categories[rng.IntN(len(Categories))],
			Date:     v.Start.Add(time.Duration(i) * v.Step),
		}
	}

	return FromRecords(v, records), nil
}

// FromRecords builds a dataset from caller-supplied rows, computing the derived
// columns. The slice is copied.
func FromRecords(v Variant, records []models.Record) *Dataset {
	d := &Dataset{
		variant: v,
		records: slices.Clone(records),
	}

	seenRegion := make(map[string]bool)
	seenCategory := make(map[string]bool)
	for i := range d.records {
		Derive(&d.records[i])

		r := d.records[i]
		if !seenRegion[r.Region] {
			seenRegion[r.Region] = true
			d.regions = append(d.regions, r.Region)
		}
		if !seenCategory[r.Category] {
			seenCategory[r.Category] = true
			d.categories = append(d.categories, r.Category)
		}
		if i == 0 || r.Sales < d.sales.Low {
			d.sales.Low = r.Sales
		}
		if i == 0 || r.Sales > d.sales.High {
			d.sales.High = r.Sales
		}
	}

	return d
}

// Derive fills the margin columns of r from its sales and profit.
func Derive(r *models.Record) {
	r.ProfitMargin = Margin(r.Profit, r.Sales)
	r.AbsMargin = math.Abs(r.ProfitMargin)
	if r.ProfitMargin >= 0 {
		r.MarginSign = models.MarginPositive
		r.Color = models.ColorPositive
	} else {
		r.MarginSign = models.MarginNegative
		r.Color = models.ColorNegative
	}
	r.MarkerSize = min(max(r.AbsMargin, minMarkerSize), maxMarkerSize)
}

// Margin returns profit as a percentage of sales. A zero sale amount is
// treated as one so the result is always finite.
func Margin(profit, sales float64) float64 {
	if sales == 0 {
		sales = 1
	}
	return profit / sales * 100
}

func recordID(variant string, seed uint64, i int) string {
	key := variant + ":" + strconv.FormatUint(seed, 10) + ":" + strconv.Itoa(i)
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

func (d *Dataset) Variant() Variant { return d.variant }

func (d *Dataset) Len() int { return len(d.records) }

// At returns a copy of the i-th record.
func (d *Dataset) At(i int) models.Record { return d.records[i] }

// All iterates the records in order without copying the backing slice.
func (d *Dataset) All() iter.Seq2[int, models.Record] {
	return func(yield func(int, models.Record) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of every record.
func (d *Dataset) Records() []models.Record {
	return slices.Clone(d.records)
}

// Options lists the distinct regions and categories in order of first
// appearance and the full sale range.
func (d *Dataset) Options() models.Options {
	return models.Options{
		Regions:    slices.Clone(d.regions),
		Categories: slices.Clone(d.categories),
		SaleRange:  d.sales,
	}
}
