package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/services"
	"synth-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

type PageHandlers struct {
	registry *services.Registry
	logger   *slog.Logger
}

func NewPageHandlers(registry *services.Registry, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		registry: registry,
		logger:   logger,
	}
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := c.Render(ctx, w); err != nil {
		h.logger.Error("render page", "path", r.URL.Path, "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// HandleIndex lists the dashboards. The pattern "GET /" also catches
// unknown paths, which get a 404.
func (h *PageHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		errors.WriteError(w, r, h.logger, errors.NotFound("Page not found"), observability.GetRequestID(r.Context()))
		return
	}

	all := h.registry.All()
	links := make([]templates.DashboardLink, 0, len(all))
	for _, a := range all {
		links = append(links, templates.DashboardLink{
			Name:    a.Name(),
			Title:   a.Title(),
			Records: a.Dataset().Len(),
		})
	}
	h.render(w, r, templates.Index(links))
}

func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("dashboard")
	a, ok := h.registry.Get(name)
	if !ok {
		err := errors.NotFound("Dashboard not found").WithDetails("no dashboard named %q", name)
		errors.WriteError(w, r, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	h.render(w, r, templates.Dashboard(templates.DashboardPage{
		Name:    a.Name(),
		Title:   a.Title(),
		GroupBy: a.Variant().GroupBy,
		Options: a.Options(),
		Total:   a.Dataset().Len(),
	}))
}
