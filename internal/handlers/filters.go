package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/models"
)

// optionalFloat accepts a JSON number, a numeric string or an empty value.
// Range inputs report their value as a string in some browsers.
type optionalFloat struct {
	Value float64
	Set   bool
}

func (o *optionalFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*o = optionalFloat{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*o = optionalFloat{}
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*o = optionalFloat{Value: v, Set: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*o = optionalFloat{Value: v, Set: true}
	return nil
}

// filterSignals is the subset of datastar signals that drive the recompute.
type filterSignals struct {
	Regions    []string      `json:"regions"`
	Categories []string      `json:"categories"`
	SaleMin    optionalFloat `json:"saleMin"`
	SaleMax    optionalFloat `json:"saleMax"`
}

func (s filterSignals) FilterState(opts models.Options) models.FilterState {
	return models.FilterState{
		Regions:    s.Regions,
		Categories: s.Categories,
		SaleRange:  saleRange(s.SaleMin, s.SaleMax, opts),
	}
}

// saleRange fills a missing bound from the dataset bounds and returns nil
// when neither bound is set.
func saleRange(low, high optionalFloat, opts models.Options) *models.Range {
	if !low.Set && !high.Set {
		return nil
	}
	r := opts.SaleRange
	if low.Set {
		r.Low = low.Value
	}
	if high.Set {
		r.High = high.Value
	}
	return &r
}

// filterFromQuery parses region, category, sale_min and sale_max. An absent
// parameter leaves the constraint open; a present but empty one selects
// nothing. Values may repeat or be comma separated.
func filterFromQuery(q url.Values, opts models.Options) (models.FilterState, error) {
	var f models.FilterState
	f.Regions = listParam(q, "region")
	f.Categories = listParam(q, "category")

	low, err := floatParam(q, "sale_min")
	if err != nil {
		return f, err
	}
	high, err := floatParam(q, "sale_max")
	if err != nil {
		return f, err
	}
	f.SaleRange = saleRange(low, high, opts)
	return f, nil
}

func listParam(q url.Values, key string) []string {
	values, ok := q[key]
	if !ok {
		return nil
	}
	result := []string{}
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}
	return result
}

func floatParam(q url.Values, key string) (optionalFloat, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return optionalFloat{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return optionalFloat{}, errors.BadRequestWrap(err, "Invalid query parameter").
			WithDetails("%s must be a number, got %q", key, raw)
	}
	return optionalFloat{Value: v, Set: true}, nil
}
