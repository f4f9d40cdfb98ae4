package handlers

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/models"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/services"
	"synth-dashboard/internal/ui/format"
	"synth-dashboard/internal/ui/templates"
)

const maxTableRows = 50

var recordTableTemplate = template.Must(template.New("recordTable").Funcs(template.FuncMap{
	"currency": format.Currency,
	"percent":  format.Percent,
	"date":     format.Date,
}).Parse(`
<div id="data-table">
<table class="modern-table">
<thead><tr><th>Date</th><th>Region</th><th>Category</th><th>Sales</th><th>Profit</th><th>Margin %</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{date .Date}}</td>
<td>{{.Region}}</td>
<td>{{.Category}}</td>
<td>{{currency .Sales}}</td>
<td class="sign-{{.MarginSign}}"><strong>{{currency .Profit}}</strong></td>
<td>{{percent .ProfitMargin}}</td>
</tr>{{end}}
</tbody>
</table>
<p>Showing {{len .Rows}} of {{.Total}} rows</p>
</div>`))

type tableData struct {
	Rows  []models.Record
	Total int
}

type SSEHandlers struct {
	registry *services.Registry
	buses    map[string]*EventBus
	logger   *slog.Logger
}

func NewSSEHandlers(registry *services.Registry, logger *slog.Logger) *SSEHandlers {
	h := &SSEHandlers{
		registry: registry,
		buses:    make(map[string]*EventBus),
		logger:   logger,
	}
	for _, a := range registry.All() {
		h.buses[a.Name()] = newDashboardBus(a.Recompute)
	}
	return h
}

func renderRecordTable(views models.DerivedViews) (string, error) {
	rows := views.Filtered
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}

	var buf strings.Builder
	err := recordTableTemplate.Execute(&buf, tableData{Rows: rows, Total: len(views.Filtered)})
	return buf.String(), err
}

// HandleEvent recomputes a dashboard for the filter state carried in the
// datastar signals and patches every chart, the table and the summary.
func (h *SSEHandlers) HandleEvent(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	name := r.PathValue("dashboard")
	a, ok := h.registry.Get(name)
	if !ok {
		errors.WriteError(w, r, h.logger, errors.NotFound("Dashboard not found").WithDetails("no dashboard named %q", name), requestID)
		return
	}

	bus := h.buses[name]
	event := Event(r.PathValue("event"))

	var signals filterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "Invalid signals"), requestID)
		return
	}

	views, err := bus.Publish(event, signals.FilterState(a.Options()))
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.NotFound("Unknown event").WithDetails("%v", err), requestID)
		return
	}

	sse := datastar.NewSSE(w, r)

	fragments := []templ.Component{
		h.chartPanel(templates.ScatterChartID, "panel", func() ([]byte, error) {
			return charts.RenderScatter(charts.SalesScatter(views.Filtered), charts.ScatterSize)
		}),
		h.chartPanel(templates.GroupChartID, "panel", func() ([]byte, error) {
			return charts.RenderGroupBar(views.Groups, views.GroupBy, charts.BarSize)
		}),
		h.chartPanel(templates.TrendChartID, "panel wide", func() ([]byte, error) {
			return charts.RenderTrend(views.Trend, views.Bucket, charts.TrendSize)
		}),
	}

	for _, c := range fragments {
		html, err := renderString(r.Context(), c)
		if err != nil {
			h.logger.Error("render chart panel", "dashboard", name, "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Warn("patch elements", "dashboard", name, "error", err)
			return
		}
	}

	table, err := renderRecordTable(views)
	if err != nil {
		h.logger.Error("render record table", "dashboard", name, "error", err)
		return
	}
	if err := sse.PatchElements(table); err != nil {
		h.logger.Warn("patch elements", "dashboard", name, "error", err)
		return
	}

	if err := sse.MarshalAndPatchSignals(summarySignals(views)); err != nil {
		h.logger.Warn("patch signals", "dashboard", name, "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// chartPanel renders a chart, falling back to a placeholder when the
// selection leaves nothing to plot.
func (h *SSEHandlers) chartPanel(id, class string, draw func() ([]byte, error)) templ.Component {
	svg, err := draw()
	switch {
	case err == nil:
		return templates.ChartPanel(id, class, svg)
	case stderrors.Is(err, charts.ErrNoData):
		return templates.EmptyPanel(id, class, "No data for the current selection")
	default:
		h.logger.Error("render chart", "chart", id, "error", err)
		return templates.EmptyPanel(id, class, "Chart unavailable")
	}
}

type summary struct {
	FilteredCount int    `json:"filteredCount"`
	TotalSales    string `json:"totalSales"`
	MeanProfit    string `json:"meanProfit"`
}

func summarySignals(views models.DerivedViews) summary {
	return summary{
		FilteredCount: len(views.Filtered),
		TotalSales:    format.Currency(views.TotalSales()),
		MeanProfit:    format.Currency(views.MeanProfit()),
	}
}

func renderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("render component: %w", err)
	}
	return sb.String(), nil
}
