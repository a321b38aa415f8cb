package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/server/http/dto"
)

// StaffHandler exposes lifecycle transitions to admins and drivers.
type StaffHandler struct {
	facade StaffFacade
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(facade StaffFacade) *StaffHandler {
	return &StaffHandler{facade: facade}
}

// List handles GET /api/staff/orders?status=.
func (h *StaffHandler) List(c *gin.Context) {
	orders, err := h.facade.ListOrders(c.Request.Context(), model.OrderStatus(c.Query("status")))
	if err != nil {
		writeError(c, err)
		return
	}
	respondList(c, orders)
}

// Approve handles POST /api/staff/orders/:id/approve.
func (h *StaffHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.Approve(c.Request.Context(), c.Param("id"), req.ToInput())
	h.respond(c, order, err)
}

// Reject handles POST /api/staff/orders/:id/reject.
func (h *StaffHandler) Reject(c *gin.Context) {
	order, err := h.facade.Reject(c.Request.Context(), c.Param("id"))
	h.respond(c, order, err)
}

// StartDelivery handles POST /api/staff/orders/:id/start.
func (h *StaffHandler) StartDelivery(c *gin.Context) {
	var req dto.StartDeliveryRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.StartDelivery(c.Request.Context(), c.Param("id"), req.ToInput())
	h.respond(c, order, err)
}

// Complete handles POST /api/staff/orders/:id/complete.
func (h *StaffHandler) Complete(c *gin.Context) {
	var req dto.CompleteRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.facade.Complete(c.Request.Context(), c.Param("id"), req.ToInput())
	h.respond(c, order, err)
}

func (h *StaffHandler) respond(c *gin.Context, order *model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
