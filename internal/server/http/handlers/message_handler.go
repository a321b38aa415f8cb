package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves the notification inbox.
type MessageHandler struct {
	facade MessageFacade
}

func NewMessageHandler(facade MessageFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// List handles GET /api/user/messages.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.facade.Messages(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respondList(c, messages)
}

// MarkRead handles POST /api/user/messages/:id/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	msg, err := h.facade.MarkMessageRead(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
