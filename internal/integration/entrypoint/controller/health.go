// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) bool

// HealthController handles health check endpoints.
type HealthController struct {
	checks map[string]Checker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// checks maps a dependency name, e.g. "database", to its checker.
func NewHealthController(checks map[string]Checker) *HealthController {
	return &HealthController{
		checks: checks,
	}
}

// Check handles GET /health requests.
// The API reports "degraded" when any dependency is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check(ctx) {
			deps[name] = "connected"
			continue
		}
		deps[name] = "disconnected"
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Dependencies: deps,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
