package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-dashboard/internal/models"
)

func TestGenerate_Shape(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			ds, err := Generate(v, 42)
			require.NoError(t, err)
			require.Equal(t, v.Rows, ds.Len())

			for i, r := range ds.All() {
				assert.Greater(t, r.Sales, 0.0)
				assert.Contains(t, Regions, r.Region)
				assert.Contains(t, Categories, r.Category)
				assert.Equal(t, v.Start.Add(time.Duration(i)*v.Step), r.Date)

				_, err := uuid.Parse(r.ID)
				assert.NoError(t, err)
			}

			opts := ds.Options()
			assert.ElementsMatch(t, Regions, opts.Regions)
			assert.ElementsMatch(t, Categories, opts.Categories)
			assert.Less(t, opts.SaleRange.Low, opts.SaleRange.High)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(Sales(), 42)
	require.NoError(t, err)
	b, err := Generate(Sales(), 42)
	require.NoError(t, err)
	c, err := Generate(Sales(), 43)
	require.NoError(t, err)

	assert.Equal(t, a.Records(), b.Records())
	assert.NotEqual(t, a.Records(), c.Records())
}

func TestGenerate_Distribution(t *testing.T) {
	ds, err := Generate(Sales(), 42)
	require.NoError(t, err)

	var sales, profit float64
	for _, r := range ds.All() {
		sales += r.Sales
		profit += r.Profit
	}
	n := float64(ds.Len())

	// loose bounds: 1000 samples of exp(800) and N(180, 120)
	assert.InDelta(t, 800, sales/n, 150)
	assert.InDelta(t, 180, profit/n, 30)
}

func TestGenerate_InvalidVariant(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Variant)
	}{
		{"empty name", func(v *Variant) { v.Name = "" }},
		{"zero rows", func(v *Variant) { v.Rows = 0 }},
		{"zero scale", func(v *Variant) { v.SaleScale = 0 }},
		{"negative std", func(v *Variant) { v.ProfitStd = -1 }},
		{"zero step", func(v *Variant) { v.Step = 0 }},
		{"bad bucket", func(v *Variant) { v.Bucket = "week" }},
		{"bad dimension", func(v *Variant) { v.GroupBy = "country" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Sales()
			tt.mutate(&v)
			_, err := Generate(v, 1)
			assert.Error(t, err)
		})
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name       string
		sales      float64
		profit     float64
		wantMargin float64
		wantSign   string
		wantColor  string
		wantSize   float64
	}{
		{"positive", 200, 50, 25, models.MarginPositive, models.ColorPositive, 25},
		{"negative", 100, -60, -60, models.MarginNegative, models.ColorNegative, 40},
		{"tiny margin", 1000, 1, 0.1, models.MarginPositive, models.ColorPositive, 5},
		{"zero margin", 100, 0, 0, models.MarginPositive, models.ColorPositive, 5},
		{"zero sales", 0, 3, 300, models.MarginPositive, models.ColorPositive, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.Record{Sales: tt.sales, Profit: tt.profit}
			Derive(&r)

			assert.InDelta(t, tt.wantMargin, r.ProfitMargin, 1e-9)
			assert.InDelta(t, math.Abs(tt.wantMargin), r.AbsMargin, 1e-9)
			assert.Equal(t, tt.wantSign, r.MarginSign)
			assert.Equal(t, tt.wantColor, r.Color)
			assert.InDelta(t, tt.wantSize, r.MarkerSize, 1e-9)
		})
	}
}

func TestMargin_ZeroSalesIsFinite(t *testing.T) {
	for _, profit := range []float64{-5, 0, 5} {
		m := Margin(profit, 0)
		if math.IsNaN(m) || math.IsInf(m, 0) {
			t.Errorf("Margin(%v, 0) = %v, want finite", profit, m)
		}
	}
}

func TestDataset_Immutable(t *testing.T) {
	src := []models.Record{
		{ID: "a", Sales: 10, Profit: 1, Region: "North", Category: "Food"},
		{ID: "b", Sales: 20, Profit: 2, Region: "South", Category: "Books"},
	}
	ds := FromRecords(Sales(), src)

	src[0].Sales = 999
	assert.Equal(t, 10.0, ds.At(0).Sales)

	records := ds.Records()
	records[1].Region = "West"
	assert.Equal(t, "South", ds.At(1).Region)

	opts := ds.Options()
	opts.Regions[0] = "Nowhere"
	assert.Equal(t, []string{"North", "South"}, ds.Options().Regions)
	assert.Equal(t, models.Range{Low: 10, High: 20}, ds.Options().SaleRange)
}

func TestDataset_AllStopsEarly(t *testing.T) {
	ds, err := Generate(Regional(), 42)
	require.NoError(t, err)

	seen := 0
	for range ds.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestLookup(t *testing.T) {
	variants, err := Lookup([]string{"regional", "sales"})
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "regional", variants[0].Name)
	assert.Equal(t, "sales", variants[1].Name)

	_, err = Lookup([]string{"sales", "inventory"})
	assert.ErrorContains(t, err, `unknown dashboard "inventory"`)
}
