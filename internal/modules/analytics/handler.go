package analytics

import (
	"net/http"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/analytics/landlord", middleware.RequireRole(domain.RoleLandlord), h.Landlord)
}

// Landlord
// @Summary   Landlord income and occupancy
// @Tags      Analytics
// @Success   200 {object} LandlordAnalytics
// @Failure   403 {object} map[string]interface{}
// @Router    /analytics/landlord [get]
func (h *Handler) Landlord(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	out, err := h.service.Landlord(c.Request.Context(), me.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch analytics")
		return
	}
	response.Success(c, http.StatusOK, out)
}
