package wishlist

import (
	"errors"
	"net/http"

	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves the caller's wishlist. There is no service layer: both operations
// are single repository calls.
type Handler struct {
	repo       Repository
	properties PropertyReader
}

func NewHandler(repo Repository, properties PropertyReader) *Handler {
	return &Handler{repo: repo, properties: properties}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/users/wishlist")
	{
		g.GET("", h.List)
		g.POST("/:propertyId", h.Toggle)
	}
}

// List returns the wishlisted properties in the order they were added.
// @Summary   Wishlist
// @Tags      Users
// @Success   200 {object} map[string]interface{}
// @Router    /users/wishlist [get]
func (h *Handler) List(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	props, err := h.repo.List(c.Request.Context(), id.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"wishlist": props})
}

// Toggle adds the property if absent, removes it otherwise.
// @Summary   Toggle wishlist entry
// @Tags      Users
// @Param     propertyId path int64 true "property id"
// @Success   200 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /users/wishlist/{propertyId} [post]
func (h *Handler) Toggle(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	propertyID, ok := utils.ParamID(c, "propertyId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	if _, err := h.properties.GetByID(c.Request.Context(), propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
		return
	}

	added, err := h.repo.Toggle(c.Request.Context(), id.UserID, propertyID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update wishlist")
		return
	}

	msg := "Removed from wishlist"
	if added {
		msg = "Added to wishlist"
	}
	response.SuccessMessage(c, http.StatusOK, msg, gin.H{"wishlisted": added})
}
