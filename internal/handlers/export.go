package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"synth-dashboard/internal/charts"
	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/export"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/services"
)

type ExportHandlers struct {
	registry *services.Registry
	size     charts.Size
	logger   *slog.Logger
}

func NewExportHandlers(registry *services.Registry, size charts.Size, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		registry: registry,
		size:     size,
		logger:   logger,
	}
}

// HandleScatter downloads the scatter chart for the filter in the query as a
// standalone HTML file.
func (h *ExportHandlers) HandleScatter(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	name := r.PathValue("dashboard")
	a, ok := h.registry.Get(name)
	if !ok {
		errors.WriteError(w, r, h.logger, errors.NotFound("Dashboard not found").WithDetails("no dashboard named %q", name), requestID)
		return
	}

	f, err := filterFromQuery(r.URL.Query(), a.Options())
	if err != nil {
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}

	views := a.Recompute(f)
	doc, err := export.Render(r.Context(), a.Title(), charts.SalesScatter(views.Filtered), h.size, time.Now())
	if err != nil {
		if stderrors.Is(err, charts.ErrNoData) {
			err = errors.Validation("Nothing to export").WithDetails("the current selection matches no rows")
		}
		errors.WriteError(w, r, h.logger, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-scatter.html"`, name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Warn("write export", "dashboard", name, "error", err)
	}
}
