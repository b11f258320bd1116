package admin

import (
	"errors"
	"net/http"

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

// RegisterRoutes expects a group already restricted to admins.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// users
	admin.GET("/users", h.ListUsers)
	admin.DELETE("/users/:id", h.DeleteUser)

	// statistics
	admin.GET("/stats", h.Stats)

	// reported properties
	admin.GET("/properties/reported", h.ReportedProperties)
	admin.PUT("/properties/:id/dismiss", h.DismissReport)
	admin.DELETE("/properties/:id", h.DeleteProperty)
}

// ListUsers
// @Summary   All users
// @Tags      Admin
// @Success   200 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Router    /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// DeleteUser
// @Summary   Delete a user
// @Tags      Admin
// @Param     id path int64 true "user id"
// @Success   200 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{} "target is an admin"
// @Failure   404 {object} map[string]interface{}
// @Router    /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ReportedProperties(c *gin.Context) {
	props, err := h.service.ReportedProperties(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": props})
}

// DismissReport
// @Summary   Dismiss a property report
// @Tags      Admin
// @Param     id path int64 true "property id"
// @Success   200 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /admin/properties/{id}/dismiss [put]
func (h *Handler) DismissReport(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	if err := h.service.DismissReport(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Report dismissed", nil)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	if err := h.service.DeleteProperty(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Property deleted", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrCannotDeleteAdmin):
		response.Error(c, http.StatusBadRequest, "FORBIDDEN_TARGET", "Cannot delete an admin account.")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
