package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"synth-dashboard/internal/errors"
	"synth-dashboard/internal/models"
	"synth-dashboard/internal/observability"
	"synth-dashboard/internal/services"
)

const cacheMaxAge = "public, max-age=300"

type APIHandlers struct {
	registry *services.Registry
	logger   *slog.Logger
}

func NewAPIHandlers(registry *services.Registry, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		registry: registry,
		logger:   logger,
	}
}

type dashboardInfo struct {
	Name    string         `json:"name"`
	Title   string         `json:"title"`
	Records int            `json:"records"`
	Bucket  string         `json:"bucket"`
	GroupBy string         `json:"group_by"`
	Options models.Options `json:"options"`
}

func (h *APIHandlers) lookup(w http.ResponseWriter, r *http.Request) (*services.Analytics, bool) {
	name := r.PathValue("dashboard")
	a, ok := h.registry.Get(name)
	if !ok {
		err := errors.NotFound("Dashboard not found").WithDetails("no dashboard named %q", name)
		errors.WriteError(w, r, h.logger, err, observability.GetRequestID(r.Context()))
	}
	return a, ok
}

func (h *APIHandlers) HandleDashboards(w http.ResponseWriter, r *http.Request) {
	all := h.registry.All()
	data := make([]dashboardInfo, 0, len(all))
	for _, a := range all {
		v := a.Variant()
		data = append(data, dashboardInfo{
			Name:    v.Name,
			Title:   v.Title,
			Records: a.Dataset().Len(),
			Bucket:  string(v.Bucket),
			GroupBy: v.GroupBy,
			Options: a.Options(),
		})
	}

	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, a.Options(), map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

// HandleViews runs the recompute step for the filter given in the query.
func (h *APIHandlers) HandleViews(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(w, r)
	if !ok {
		return
	}

	f, err := filterFromQuery(r.URL.Query(), a.Options())
	if err != nil {
		errors.WriteError(w, r, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteSuccess(w, a.Recompute(f))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().Format(time.RFC3339),
		"version":    "1.0.0",
		"dashboards": h.registry.Names(),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.registry.Stats())
}
