package models

import "slices"

// Range is an inclusive numeric interval. Low > High matches nothing.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// FilterState is the set of constraints selected in the controls.
//
// A nil slice or nil range leaves that constraint open. A non-nil empty slice
// selects nothing, which is how the controls behave when every option has
// been deselected.
type FilterState struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	SaleRange  *Range   `json:"sale_range,omitempty"`
}

// Match reports whether a record satisfies all three constraints.
func (f FilterState) Match(r Record) bool {
	if f.Regions != nil && !slices.Contains(f.Regions, r.Region) {
		return false
	}
	if f.Categories != nil && !slices.Contains(f.Categories, r.Category) {
		return false
	}
	if f.SaleRange != nil && !f.SaleRange.Contains(r.Sales) {
		return false
	}
	return true
}

// Options describes the values a dashboard's controls can take.
type Options struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	SaleRange  Range    `json:"sale_range"`
}

// AllSelected is the filter state the controls start with.
func (o Options) AllSelected() FilterState {
	r := o.SaleRange
	return FilterState{
		Regions:    slices.Clone(o.Regions),
		Categories: slices.Clone(o.Categories),
		SaleRange:  &r,
	}
}
