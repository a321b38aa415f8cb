package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodshare/internal/server/http/dto"
)

// OrderHandler manages the owner's side of orders.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// SubmitDonation handles POST /api/user/donations.
func (h *OrderHandler) SubmitDonation(c *gin.Context) {
	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	order, err := h.facade.SubmitDonation(c.Request.Context(), CurrentUserID(c), req.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// SubmitRequest handles POST /api/user/requests.
func (h *OrderHandler) SubmitRequest(c *gin.Context) {
	var req dto.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	order, err := h.facade.SubmitRequest(c.Request.Context(), CurrentUserID(c), req.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List handles GET /api/user/orders. Acknowledged orders are included
// only with ?all=true.
func (h *OrderHandler) List(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), all)
	if err != nil {
		writeError(c, err)
		return
	}
	respondList(c, orders)
}

// Acknowledge handles POST /api/user/orders/:id/acknowledge.
func (h *OrderHandler) Acknowledge(c *gin.Context) {
	order, err := h.facade.Acknowledge(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// History handles GET /api/user/history.
func (h *OrderHandler) History(c *gin.Context) {
	history, err := h.facade.History(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respondList(c, history)
}
