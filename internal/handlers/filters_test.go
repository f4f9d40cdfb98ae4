package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/models"
)

var testOptions = models.Options{
	Regions:    []string{"North", "South"},
	Categories: []string{"Food"},
	SaleRange:  models.Range{Low: 1, High: 900},
}

func TestOptionalFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    optionalFloat
		wantErr bool
	}{
		{in: `12.5`, want: optionalFloat{Value: 12.5, Set: true}},
		{in: `"40"`, want: optionalFloat{Value: 40, Set: true}},
		{in: `" 7 "`, want: optionalFloat{Value: 7, Set: true}},
		{in: `""`, want: optionalFloat{}},
		{in: `null`, want: optionalFloat{}},
		{in: `"abc"`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		var got optionalFloat
		err := json.Unmarshal([]byte(tt.in), &got)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterSignals_FilterState(t *testing.T) {
	var s filterSignals
	require.NoError(t, json.Unmarshal([]byte(`{"regions":["North"],"categories":[],"saleMax":500}`), &s))

	f := s.FilterState(testOptions)
	assert.Equal(t, []string{"North"}, f.Regions)
	assert.NotNil(t, f.Categories)
	assert.Empty(t, f.Categories)
	assert.Equal(t, &models.Range{Low: 1, High: 500}, f.SaleRange)

	var open filterSignals
	require.NoError(t, json.Unmarshal([]byte(`{}`), &open))
	assert.Equal(t, models.FilterState{}, open.FilterState(testOptions))
}

func TestFilterFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.FilterState
	}{
		{name: "absent", query: "", want: models.FilterState{}},
		{name: "empty region", query: "region=", want: models.FilterState{Regions: []string{}}},
		{name: "commas and repeats", query: "region=North,South&region=East&category=Food",
			want: models.FilterState{Regions: []string{"North", "South", "East"}, Categories: []string{"Food"}}},
		{name: "both bounds", query: "sale_min=10&sale_max=20",
			want: models.FilterState{SaleRange: &models.Range{Low: 10, High: 20}}},
		{name: "upper bound only", query: "sale_max=20",
			want: models.FilterState{SaleRange: &models.Range{Low: 1, High: 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := filterFromQuery(q, testOptions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterFromQuery_InvalidNumber(t *testing.T) {
	_, err := filterFromQuery(url.Values{"sale_max": {"ten"}}, testOptions)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.CodeBadRequest, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Contains(t, appErr.Details, `sale_max must be a number, got "ten"`)
}
