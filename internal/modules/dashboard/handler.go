// Package dashboard serves the per-role landing payloads.
package dashboard

import (
	"fmt"
	"net/http"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var (
	renterFeatures = []string{
		"Search rentals",
		"Save favorite listings",
		"Apply for rentals",
	}
	landlordFeatures = []string{
		"Add and manage listings",
		"View renter applications",
		"Communicate with renters",
	}
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/dashboard")
	{
		g.GET("/renter", middleware.RequireRole(domain.RoleRenter), h.Renter)
		g.GET("/landlord", middleware.RequireRole(domain.RoleLandlord), h.Landlord)
	}
}

func (h *Handler) Renter(c *gin.Context) {
	h.render(c, "Renter", gin.H{"renter_features": renterFeatures})
}

func (h *Handler) Landlord(c *gin.Context) {
	h.render(c, "Landlord", gin.H{"landlord_features": landlordFeatures})
}

func (h *Handler) render(c *gin.Context, label string, extra gin.H) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	body := gin.H{"user": me.User.Contact()}
	for k, v := range extra {
		body[k] = v
	}
	response.SuccessMessage(c, http.StatusOK,
		fmt.Sprintf("Welcome to your %s dashboard, %s!", label, me.User.Name), body)
}
