package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"langodata/internal/domain/license"
	"langodata/internal/infrastructure/storage/postgres"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	sources *postgres.SourceSet
	license *license.Manager
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(sources *postgres.SourceSet, lic *license.Manager) *HealthHandler {
	return &HealthHandler{sources: sources, license: lic}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.sources.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"sources": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"sources": "healthy",
		},
	})
}

// Info handles GET /health/info with license state for operators.
func (h *HealthHandler) Info(c *gin.Context) {
	expiresSoon, daysLeft := h.license.ExpiresSoon()
	c.JSON(http.StatusOK, gin.H{
		"service": "langodata",
		"license": gin.H{
			"valid":        h.license.Status(),
			"expires_soon": expiresSoon,
			"days_left":    daysLeft,
		},
	})
}
