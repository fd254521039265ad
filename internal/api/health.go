package api

import (
	"net/http"
	"time"

	"github.com/mycelian/casefiles/internal/api/respond"
)

type healthHandler struct {
	healthy    func() bool
	components func() map[string]bool
}

// CheckHealth handles GET /api/health.
// Always returns 200; the body reports healthy or unhealthy.
func (h *healthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.healthy == nil || h.healthy() {
		status = "healthy"
	}
	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.components != nil {
		response["components"] = h.components()
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
