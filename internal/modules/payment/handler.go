package payment

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/utils"
	"rentalconnect/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	renter := middleware.RequireRole(domain.RoleRenter)
	landlord := middleware.RequireRole(domain.RoleLandlord)

	g := protected.Group("/payments")
	{
		g.POST("", renter, h.CreatePayment)
		g.GET("/me", renter, h.ListMine)
		g.GET("/landlord", landlord, h.ListLandlord)
		g.GET("/landlord/export", landlord, h.ExportLandlord)
		g.PATCH("/:id/confirm", h.Confirm)
	}
}

// CreatePayment records the renter's rent payment for a property and month.
// @Summary   Pay rent
// @Tags      Payments
// @Param     body body CreatePaymentRequest true "property_id, optional month (YYYY-MM)"
// @Success   201 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Failure   409 {object} map[string]interface{} "already paid for that month"
// @Router    /payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), me.UserID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Payment successful", gin.H{"payment": toView(p)})
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
	response.Success(c, http.StatusOK, gin.H{"payments": toViews(items)})
}

func (h *Handler) ListLandlord(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	items, err := h.service.ListForLandlord(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": toViews(items)})
}

// ExportLandlord downloads the landlord's payments as a spreadsheet.
// @Summary   Export payments
// @Tags      Payments
// @Produce   application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success   200 {file} file
// @Router    /payments/landlord/export [get]
func (h *Handler) ExportLandlord(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportLandlord(c.Request.Context(), me.UserID, &buf); err != nil {
		h.fail(c, err)
		return
	}

	name := fmt.Sprintf("payments_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Confirm acknowledges receipt of a payment. Only its landlord may call it.
// @Summary   Confirm payment
// @Tags      Payments
// @Param     id path int64 true "payment id"
// @Success   200 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /payments/{id}/confirm [patch]
func (h *Handler) Confirm(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment id")
		return
	}

	p, err := h.service.Confirm(c.Request.Context(), me.UserID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Payment confirmed", gin.H{"payment": toView(p)})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	case errors.Is(err, ErrInvalidPeriod):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Month must be in YYYY-MM format")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
