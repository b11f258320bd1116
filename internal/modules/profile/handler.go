package profile

import (
	"errors"
	"net/http"

	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/profile", h.GetProfile)
	protected.PUT("/users/profile", h.UpdateProfile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	u, err := h.service.Get(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// UpdateProfile changes name, email and/or profile image of the caller.
// @Summary   Update profile
// @Tags      Users
// @Param     request body UpdateProfileRequest true "fields to change"
// @Success   200 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Router    /users/profile [PUT]
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	u, err := h.service.Update(c.Request.Context(), id.UserID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Profile updated", gin.H{"user": u})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, ErrImageTooLarge):
		response.Error(c, http.StatusBadRequest, "IMAGE_TOO_LARGE", "Profile image is too large")
	case errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "INVALID_IMAGE", "Profile image must be an image data URL")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
