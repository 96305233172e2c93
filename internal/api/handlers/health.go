package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "transcripto/internal/app/errors"
	"transcripto/internal/app/relay"
)

// HealthHandler reports relay and backend availability
type HealthHandler struct {
	forwarder relay.Forwarder
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(forwarder relay.Forwarder) *HealthHandler {
	return &HealthHandler{forwarder: forwarder}
}

// Relay handles GET /health
//
// @Summary Relay liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Relay(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// Backend handles GET /api/health/backend
//
// @Summary Backend reachability
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health/backend [get]
func (h *HealthHandler) Backend(c *gin.Context) {
	if err := h.forwarder.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "unhealthy",
			"detail":      apperrors.DetailOf(err, "Backend unavailable"),
			"backend_url": h.forwarder.BaseURL(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"backend_url": h.forwarder.BaseURL(),
	})
}
