// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/verifund/aiscore/pkg/metrics"
)

// HealthHandler handles health and metrics exposition requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests with a JSON readiness report.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !h.deps.Started() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "starting",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "healthy",
		"models_loaded": "true",
	})
}

// HandleMetrics handles GET /metrics with Prometheus exposition from the
// custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
