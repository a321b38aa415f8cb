package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves aggregate statistics.
type DashboardHandler struct {
	facade DashboardFacade
}

func NewDashboardHandler(facade DashboardFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Get handles GET /api/dashboard?period=weekly|monthly.
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.facade.Dashboard(c.Request.Context(), c.Query("period"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dashboard)
}
