package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler handles GET /health
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler creates a health handler over the named dependency checks
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health reports "ok" when every check passes, otherwise 503 with the failing components
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			components[name] = err.Error()
			healthy = false
			continue
		}
		components[name] = "ok"
	}

	if !healthy {
		writeEnvelope(w, Envelope{
			Success: false,
			Data:    components,
			Message: "degraded",
			Status:  http.StatusServiceUnavailable,
			Error:   "UNAVAILABLE",
		})
		return
	}

	respondWithMessage(w, http.StatusOK, "ok", components)
}
