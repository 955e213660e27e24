// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// serviceVersion is reported by the root endpoint.
const serviceVersion = "2.0.0"

// RootHandler serves the service-info document at /.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests with a service description and
// endpoint map, mirroring what API consumers probe for liveness.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "VeriFund Creator Scoring & Pricing API",
		"status":  "active",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"score":         "/score (POST) - Get creator success score",
			"suggest_price": "/suggest-price (POST) - Get pricing recommendation",
			"webhook":       "/webhook/github/{project_id} (POST) - Re-score on commit",
			"health":        "/healthz (GET) - Readiness report",
			"docs":          "/api-docs (GET) - API documentation",
		},
	})
}
