package message

import (
	"errors"
	"net/http"

	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	ws      *WSHandler
}

// NewHandler mounts the live feed too when ws is non-nil.
func NewHandler(service *Service, ws *WSHandler) *Handler {
	return &Handler{service: service, ws: ws}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/messages")
	{
		g.POST("", h.Send)
		g.GET("", h.Inbox)
		g.GET("/contacts/list", h.Contacts)
		if h.ws != nil {
			g.GET("/ws", h.ws.Serve)
		}
		g.GET("/:withUserId", h.Conversation)
	}
}

// Send
// @Summary   Send a message
// @Tags      Messages
// @Param     body body SendMessageRequest true "receiver_id, text"
// @Success   201 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /messages [post]
func (h *Handler) Send(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Send(c.Request.Context(), me.UserID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Message sent", gin.H{"message": m})
}

func (h *Handler) Inbox(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	msgs, err := h.service.Inbox(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) Contacts(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	contacts, err := h.service.Contacts(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contacts": contacts})
}

// Conversation returns both directions between the caller and :withUserId, oldest first.
func (h *Handler) Conversation(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	other, ok := utils.ParamID(c, "withUserId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	msgs, err := h.service.Conversation(c.Request.Context(), me.UserID, other)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Receiver and text are required")
	case errors.Is(err, ErrSelfMessage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot message yourself")
	case errors.Is(err, ErrReceiverNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Receiver not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
