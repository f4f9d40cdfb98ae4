package models

import "time"

const (
	MarginPositive = "Positive"
	MarginNegative = "Negative"

	ColorPositive = "#2ecc71"
	ColorNegative = "#e74c3c"
)

// Record is one synthetic sales transaction. The margin fields are derived
// once when the dataset is built and never change afterwards.
type Record struct {
	ID           string    `json:"id"`
	Sales        float64   `json:"sales"`
	Profit       float64   `json:"profit"`
	Region       string    `json:"region"`
	Category     string    `json:"category"`
	Date         time.Time `json:"date"`
	ProfitMargin float64   `json:"profit_margin"`
	AbsMargin    float64   `json:"abs_margin"`
	MarginSign   string    `json:"margin_sign"`
	Color        string    `json:"color"`
	MarkerSize   float64   `json:"marker_size"`
}

// Dimension returns the value of a grouping dimension ("region" or "category").
func (r Record) Dimension(name string) string {
	switch name {
	case DimensionRegion:
		return r.Region
	case DimensionCategory:
		return r.Category
	default:
		return ""
	}
}

const (
	DimensionRegion   = "region"
	DimensionCategory = "category"
)

type TimeBucket string

const (
	BucketDay TimeBucket = "day"
	BucketRaw TimeBucket = "raw"
)

type TimePoint struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

type GroupMean struct {
	Key    string  `json:"key"`
	Profit float64 `json:"profit"`
	Count  int     `json:"count"`
}

// DerivedViews is what the presentation layer receives after each recompute.
type DerivedViews struct {
	Filtered []Record    `json:"filtered"`
	Trend    []TimePoint `json:"trend"`
	Groups   []GroupMean `json:"groups"`
	GroupBy  string      `json:"group_by"`
	Bucket   TimeBucket  `json:"bucket"`
}

// TotalSales sums the sales column of the filtered rows.
func (v DerivedViews) TotalSales() float64 {
	var total float64
	for _, r := range v.Filtered {
		total += r.Sales
	}
	return total
}

// MeanProfit is the mean profit of the filtered rows, zero when empty.
func (v DerivedViews) MeanProfit() float64 {
	if len(v.Filtered) == 0 {
		return 0
	}
	var total float64
	for _, r := range v.Filtered {
		total += r.Profit
	}
	return total / float64(len(v.Filtered))
}
