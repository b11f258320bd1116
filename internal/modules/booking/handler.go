package booking

import (
	"context"
	"errors"
	"net/http"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	renter := middleware.RequireRole(domain.RoleRenter)
	landlord := middleware.RequireRole(domain.RoleLandlord)

	protected.POST("/properties/:id/book", renter, h.CreateBooking)

	g := protected.Group("/bookings")
	{
		g.GET("/my", renter, h.ListMine)
		g.GET("/landlord-pending", landlord, h.ListPending)
		g.GET("/:id", h.GetBooking)
		g.PATCH("/:id/approve", h.Approve)
		g.PATCH("/:id/reject", h.Reject)
		g.DELETE("/:id", h.Cancel)
	}
}

// CreateBooking requests the property for the calling renter.
// @Summary   Book property
// @Tags      Bookings
// @Param     id path int64 true "property id"
// @Success   201 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{} "property unavailable"
// @Failure   404 {object} map[string]interface{}
// @Router    /properties/{id}/book [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	propertyID, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	b, err := h.service.Create(c.Request.Context(), me.UserID, propertyID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Booking request sent", gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	items, err := h.service.ListForRenter(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toViews(items)})
}

func (h *Handler) ListPending(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	items, err := h.service.ListPendingForLandlord(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toViews(items)})
}

func (h *Handler) GetBooking(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.Get(c.Request.Context(), me.UserID, me.Role, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toView(b)})
}

// Approve confirms a booking. Only the booking's landlord may call it.
// @Summary   Approve booking
// @Tags      Bookings
// @Param     id path int64 true "booking id"
// @Success   200 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Failure   409 {object} map[string]interface{} "withdrawn by renter"
// @Router    /bookings/{id}/approve [patch]
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve, "Booking approved")
}

// Reject cancels a booking on the landlord's side.
// @Summary   Reject booking
// @Tags      Bookings
// @Param     id path int64 true "booking id"
// @Success   200 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Failure   409 {object} map[string]interface{} "withdrawn by renter"
// @Router    /bookings/{id}/reject [patch]
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject, "Booking rejected")
}

func (h *Handler) decide(c *gin.Context, fn func(ctx context.Context, landlordID, id int64) (*domain.Booking, error), msg string) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := fn(c.Request.Context(), me.UserID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, msg, gin.H{"booking": toView(b)})
}

// Cancel deletes the caller's own booking.
// @Summary   Cancel booking
// @Tags      Bookings
// @Param     id path int64 true "booking id"
// @Success   200 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /bookings/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	if err := h.service.Cancel(c.Request.Context(), me.UserID, id); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
