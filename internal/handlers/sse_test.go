package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-dashboard/internal/models"
	"synth-dashboard/internal/ui/templates"
)

func sseRequest(dashboard, event, signals string) *http.Request {
	target := "/sse/" + dashboard + "/" + event
	if signals != "" {
		target += "?datastar=" + url.QueryEscape(signals)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("dashboard", dashboard)
	req.SetPathValue("event", event)
	return req
}

func TestNewSSEHandlers(t *testing.T) {
	registry := createTestRegistry(t)
	logger := newTestLogger()

	handlers := NewSSEHandlers(registry, logger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.logger != logger {
		t.Error("NewSSEHandlers() should set logger field")
	}
	for _, name := range registry.Names() {
		bus, ok := handlers.buses[name]
		if !ok {
			t.Fatalf("no event bus for dashboard %q", name)
		}
		if got := bus.Events(); len(got) != len(controlEvents) {
			t.Errorf("dashboard %q: expected %d subscribed events, got %v", name, len(controlEvents), got)
		}
	}
}

func TestRenderRecordTable(t *testing.T) {
	views := models.DerivedViews{Filtered: []models.Record{
		{Sales: 1234.5, Profit: -20, Region: "North", Category: "Food", Date: day(1, 12), ProfitMargin: -1.62, MarginSign: models.MarginNegative},
	}}

	html, err := renderRecordTable(views)
	require.NoError(t, err)

	for _, want := range []string{
		`<div id="data-table">`,
		`<table class="modern-table">`,
		"<th>Margin %</th>",
		"2024-01-01 12:00",
		"North",
		"$1,234.50",
		`<td class="sign-Negative"><strong>-$20.00</strong></td>`,
		"-1.6",
		"Showing 1 of 1 rows",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected HTML to contain %q", want)
		}
	}
}

func TestRenderRecordTable_LimitsRows(t *testing.T) {
	records := make([]models.Record, 75)
	for i := range records {
		records[i] = models.Record{Sales: float64(i), Region: "North", Category: "Food", MarginSign: models.MarginPositive}
	}

	html, err := renderRecordTable(models.DerivedViews{Filtered: records})
	require.NoError(t, err)

	rowCount := strings.Count(html, "<tr>") - 1
	if rowCount != maxTableRows {
		t.Errorf("expected %d rows, got %d", maxTableRows, rowCount)
	}
	assert.Contains(t, html, "Showing 50 of 75 rows")
}

func TestSSEHandlers_HandleEvent(t *testing.T) {
	handlers := NewSSEHandlers(createTestRegistry(t), newTestLogger())

	req := sseRequest("sales", "regions", `{"regions":["North"],"categories":null,"saleMin":"","saleMax":null}`)
	w := httptest.NewRecorder()
	handlers.HandleEvent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
	}

	body := w.Body.String()
	for _, id := range []string{templates.ScatterChartID, templates.GroupChartID, templates.TrendChartID, templates.DataTableID} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, "<svg")
	assert.Equal(t, 3, strings.Count(body, "<tr>"), "header plus the two North rows")
	assert.Contains(t, body, `"filteredCount":2`)
	assert.Contains(t, body, `"totalSales":"$400.00"`)
	assert.Contains(t, body, `"meanProfit":"$20.00"`)
}

func TestSSEHandlers_HandleEvent_NoSignalsSelectsAll(t *testing.T) {
	handlers := NewSSEHandlers(createTestRegistry(t), newTestLogger())

	w := httptest.NewRecorder()
	handlers.HandleEvent(w, sseRequest("sales", "refresh", ""))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"filteredCount":4`)
}

func TestSSEHandlers_HandleEvent_EmptySelection(t *testing.T) {
	handlers := NewSSEHandlers(createTestRegistry(t), newTestLogger())

	w := httptest.NewRecorder()
	handlers.HandleEvent(w, sseRequest("sales", "categories", `{"regions":["North"],"categories":[]}`))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "No data for the current selection"))
	assert.NotContains(t, body, "<svg")
	assert.Contains(t, body, `"filteredCount":0`)
	assert.Contains(t, body, "Showing 0 of 0 rows")
}

func TestSSEHandlers_HandleEvent_SaleRange(t *testing.T) {
	handlers := NewSSEHandlers(createTestRegistry(t), newTestLogger())

	w := httptest.NewRecorder()
	handlers.HandleEvent(w, sseRequest("sales", "sales-range", `{"saleMin":150,"saleMax":"300"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"filteredCount":2`)
}

func TestSSEHandlers_HandleEvent_Errors(t *testing.T) {
	tests := []struct {
		name       string
		dashboard  string
		event      string
		signals    string
		wantStatus int
	}{
		{"unknown dashboard", "inventory", "refresh", "", http.StatusNotFound},
		{"unknown event", "sales", "zoom", "", http.StatusNotFound},
		{"malformed signals", "sales", "refresh", `{"regions":`, http.StatusBadRequest},
		{"non numeric bound", "sales", "sales-range", `{"saleMin":"lots"}`, http.StatusBadRequest},
	}

	handlers := NewSSEHandlers(createTestRegistry(t), newTestLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.HandleEvent(w, sseRequest(tt.dashboard, tt.event, tt.signals))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.False(t, decodeEnvelope(t, w).Success)
		})
	}
}

func TestSummarySignals(t *testing.T) {
	views := models.DerivedViews{Filtered: []models.Record{
		{Sales: 1000, Profit: 100},
		{Sales: 500.5, Profit: -50},
	}}

	got := summarySignals(views)
	assert.Equal(t, summary{FilteredCount: 2, TotalSales: "$1,500.50", MeanProfit: "$25.00"}, got)
	assert.Equal(t, summary{FilteredCount: 0, TotalSales: "$0.00", MeanProfit: "$0.00"}, summarySignals(models.DerivedViews{}))
}
