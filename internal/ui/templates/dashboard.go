package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/a-h/templ"

	"synth-dashboard/internal/models"
	"synth-dashboard/internal/ui/format"
)

// Element ids patched by the SSE handlers.
const (
	ScatterChartID = "scatter-chart"
	TrendChartID   = "trend-chart"
	GroupChartID   = "group-chart"
	DataTableID    = "data-table"
)

// DashboardPage is the composed layout of one dashboard with every control
// initialised to "all".
type DashboardPage struct {
	Name    string
	Title   string
	GroupBy string
	Options models.Options
	Total   int
}

// Signals is the initial datastar signal set of a dashboard page.
type Signals struct {
	Regions       []string `json:"regions"`
	Categories    []string `json:"categories"`
	SaleMin       float64  `json:"saleMin"`
	SaleMax       float64  `json:"saleMax"`
	FilteredCount int      `json:"filteredCount"`
	TotalSales    string   `json:"totalSales"`
	MeanProfit    string   `json:"meanProfit"`
}

func (p DashboardPage) signals() Signals {
	return Signals{
		Regions:       p.Options.Regions,
		Categories:    p.Options.Categories,
		SaleMin:       math.Floor(p.Options.SaleRange.Low),
		SaleMax:       math.Ceil(p.Options.SaleRange.High),
		FilteredCount: p.Total,
		TotalSales:    format.Currency(0),
		MeanProfit:    format.Currency(0),
	}
}

func (p DashboardPage) action(event string) string {
	return fmt.Sprintf("@get('/sse/%s/%s')", p.Name, event)
}

func Dashboard(p DashboardPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(p.signals())
		if err != nil {
			return fmt.Errorf("marshal signals: %w", err)
		}

		hw := &htmlWriter{w: w}
		hw.raw(`<body data-signals="`)
		hw.text(string(signals))
		hw.raw(`" data-init="`)
		hw.text(p.action("refresh"))
		hw.raw(`"><header><a href="/">All dashboards</a><h1>`)
		hw.text(p.Title)
		hw.raw(`</h1><p>`)
		hw.text(fmt.Sprintf("%d synthetic records, average profit by %s", p.Total, p.GroupBy))
		hw.raw(`</p></header><main>`)

		hw.raw(`<aside class="controls">`)
		multiSelect(hw, "Regions", "regions", p.Options.Regions, p.action("regions"))
		multiSelect(hw, "Categories", "categories", p.Options.Categories, p.action("categories"))
		saleRange(hw, p)
		hw.raw(`<p><a href="/export/`)
		hw.text(p.Name)
		hw.raw(`/scatter" data-attr:href="`)
		hw.text(fmt.Sprintf("'/export/%s/scatter?' + new URLSearchParams({region: $regions.join(','), category: $categories.join(','), sale_min: $saleMin, sale_max: $saleMax})", p.Name))
		hw.raw(`">Export scatter as HTML</a></p></aside>`)

		hw.raw(`<section><div class="summary">`)
		hw.raw(`<div>Rows<strong id="filtered-count" data-text="$filteredCount"></strong></div>`)
		hw.raw(`<div>Total sales<strong id="total-sales" data-text="$totalSales"></strong></div>`)
		hw.raw(`<div>Mean profit<strong id="mean-profit" data-text="$meanProfit"></strong></div>`)
		hw.raw(`</div><div class="charts">`)
		hw.component(ctx, EmptyPanel(ScatterChartID, "panel", "Loading..."))
		hw.component(ctx, EmptyPanel(GroupChartID, "panel", "Loading..."))
		hw.component(ctx, EmptyPanel(TrendChartID, "panel wide", "Loading..."))
		hw.raw(`</div><div id="` + DataTableID + `"></div></section></main></body>`)
		return hw.err
	})
	return Layout(p.Title, body)
}

func multiSelect(hw *htmlWriter, label, signal string, values []string, action string) {
	hw.raw(`<label for="` + signal + `-select">`)
	hw.text(label)
	hw.raw(`</label><select multiple id="` + signal + `-select" data-bind="` + signal + `" data-on:change="`)
	hw.text(action)
	hw.raw(`">`)
	for _, v := range values {
		hw.raw(`<option value="`)
		hw.text(v)
		hw.raw(`" selected>`)
		hw.text(v)
		hw.raw(`</option>`)
	}
	hw.raw(`</select>`)
}

func saleRange(hw *htmlWriter, p DashboardPage) {
	s := p.signals()
	bounds := fmt.Sprintf(` min="%g" max="%g" step="10"`, s.SaleMin, s.SaleMax)
	action := templ.EscapeString(p.action("sales-range"))

	hw.raw(`<label>Sales range ($)</label>`)
	hw.raw(`<input type="range" id="sale-min"` + bounds + ` data-bind="saleMin" data-on:change="` + action + `">`)
	hw.raw(`<input type="range" id="sale-max"` + bounds + ` data-bind="saleMax" data-on:change="` + action + `">`)
	hw.raw(`<p><span data-text="$saleMin"></span> to <span data-text="$saleMax"></span></p>`)
}
