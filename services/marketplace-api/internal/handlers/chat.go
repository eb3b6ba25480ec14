package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/middlewares"
	"github.com/you/agrigo/services/marketplace-api/internal/service"
)

type ChatHandler struct {
	svc *service.ChatSvc
}

func NewChatHandler(svc *service.ChatSvc) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// POST /chats
func (h *ChatHandler) Send(c *gin.Context) {
	var in service.SendMessageInput
	if err := bind(c, &in); err != nil {
		fail(c, err)
		return
	}
	m, err := h.svc.Send(c.Request.Context(), middlewares.ActorFrom(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Message sent successfully", m)
}

// GET /chats/:booking_id
func (h *ChatHandler) Messages(c *gin.Context) {
	items, err := h.svc.Messages(c.Request.Context(), middlewares.ActorFrom(c), c.Param("booking_id"))
	if err != nil {
		fail(c, err)
		return
	}
	okList(c, "Messages retrieved successfully", items)
}

// PUT /chats/:booking_id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	var in struct {
		MessageIDs []string `json:"message_ids"`
	}
	if err := bind(c, &in); err != nil {
		fail(c, apperr.Validationf("message_ids must be an array"))
		return
	}
	bookingID := c.Param("booking_id")
	n, err := h.svc.MarkRead(c.Request.Context(), bookingID, in.MessageIDs)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Messages marked as read", gin.H{"booking_id": bookingID, "updated": n})
}
