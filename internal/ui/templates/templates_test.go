package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-dashboard/internal/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func testPage() DashboardPage {
	return DashboardPage{
		Name:    "sales",
		Title:   "Interactive Sales Dashboard",
		GroupBy: models.DimensionCategory,
		Options: models.Options{
			Regions:    []string{"North", "South"},
			Categories: []string{"Books"},
			SaleRange:  models.Range{Low: 0.4, High: 2500.2},
		},
		Total: 1000,
	}
}

func TestDashboard(t *testing.T) {
	html := render(t, Dashboard(testPage()))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Interactive Sales Dashboard</title>")
	assert.Contains(t, html, datastarScript)
	assert.Contains(t, html, `data-init="@get(&#39;/sse/sales/refresh&#39;)"`)
	assert.Contains(t, html, `data-bind="regions"`)
	assert.Contains(t, html, `data-bind="categories"`)
	assert.Contains(t, html, `@get(&#39;/sse/sales/sales-range&#39;)`)
	assert.Contains(t, html, `<option value="North" selected>North</option>`)
	assert.Contains(t, html, `min="0" max="2501"`)
	for _, id := range []string{ScatterChartID, TrendChartID, GroupChartID, DataTableID} {
		assert.Contains(t, html, `id="`+id+`"`)
	}
	assert.Contains(t, html, `&#34;filteredCount&#34;:1000`)
}

func TestDashboard_EscapesValues(t *testing.T) {
	p := testPage()
	p.Title = `<script>alert("x")</script>`
	p.Options.Regions = []string{`"><b>`}

	html := render(t, Dashboard(p))
	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, `"><b>`)
}

func TestIndex(t *testing.T) {
	html := render(t, Index([]DashboardLink{
		{Name: "regional", Title: "Regional Sales Dashboard", Records: 500},
		{Name: "sales", Title: "Interactive Sales Dashboard", Records: 1000},
	}))

	assert.Contains(t, html, `href="/dashboards/regional"`)
	assert.Contains(t, html, `href="/dashboards/sales"`)
	assert.Contains(t, html, "1000 synthetic records")
}

func TestPanels(t *testing.T) {
	html := render(t, ChartPanel(ScatterChartID, "panel", []byte("<svg></svg>")))
	assert.Equal(t, `<div id="scatter-chart" class="panel"><svg></svg></div>`, html)

	html = render(t, EmptyPanel(TrendChartID, "panel wide", "No data"))
	assert.Equal(t, `<div id="trend-chart" class="panel wide"><p class="empty">No data</p></div>`, html)
}

func TestExportDocument(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	html := render(t, ExportDocument("Scatter & Co", []byte(`<svg id="x"></svg>`), ts))

	assert.Contains(t, html, "<title>Scatter &amp; Co</title>")
	assert.Contains(t, html, `<svg id="x"></svg>`)
	assert.Contains(t, html, "2024-01-02T03:04:05Z")
	assert.NotContains(t, html, "<script")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender_PropagatesWriteError(t *testing.T) {
	err := Dashboard(testPage()).Render(context.Background(), failingWriter{})
	assert.EqualError(t, err, "closed")
}
