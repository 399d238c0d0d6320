package handler

import (
	"net/http"
)

// livenessBody matches what uptime checks already expect.
const livenessBody = "Earthy AI backend running"

// HealthHandler handles the liveness probe.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Live handles GET /
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(livenessBody))
}
