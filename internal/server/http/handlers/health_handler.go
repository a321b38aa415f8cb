package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodshare/internal/server/http/dto"
)

// HealthChecker checks that the record store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports readiness.
type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Get handles GET /api/health.
func (h *HealthHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "record store unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
