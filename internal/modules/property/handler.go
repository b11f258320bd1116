package property

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/utils"
	"rentalconnect/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/properties", h.List)
	api.GET("/properties/search", h.Search)
	api.GET("/properties/landlord/:id", h.ListByLandlord)
	api.GET("/properties/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	landlord := middleware.RequireRole(domain.RoleLandlord)
	renter := middleware.RequireRole(domain.RoleRenter)

	protected.POST("/properties", landlord, h.Create)
	protected.GET("/properties/my", landlord, h.ListMine)
	protected.PUT("/properties/:id", landlord, h.Update)
	protected.PATCH("/properties/:id/status", landlord, h.UpdateStatus)
	protected.DELETE("/properties/:id", landlord, h.Delete)
	protected.POST("/properties/:id/comments", h.AddComment)
	protected.POST("/properties/:id/report", renter, h.Report)
}

func filterFromQuery(c *gin.Context) (domain.PropertyFilter, bool) {
	f := domain.PropertyFilter{Area: strings.TrimSpace(c.Query("area"))}
	var ok bool
	if raw := c.Query("landlord"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return f, false
		}
		f.LandlordID = &id
	}
	if f.Bedrooms, ok = utils.QueryIntPtr(c, "bedrooms"); !ok {
		return f, false
	}
	if f.MinRent, ok = utils.QueryFloatPtr(c, "minRent"); !ok {
		return f, false
	}
	if f.MaxRent, ok = utils.QueryFloatPtr(c, "maxRent"); !ok {
		return f, false
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		f.Status = domain.PropertyStatus(s)
		if !f.Status.Valid() {
			return f, false
		}
	}
	return f, true
}

// List returns a page of properties, newest first.
// @Summary   List properties
// @Tags      Properties
// @Param     landlord query int false "landlord id"
// @Param     area query string false "substring of the address"
// @Param     bedrooms query int false "exact bedroom count"
// @Param     minRent query number false "minimum rent"
// @Param     maxRent query number false "maximum rent"
// @Param     status query string false "Available|Unavailable"
// @Param     page query int false "page" default(1)
// @Param     limit query int false "page size" default(20)
// @Success   200 {object} ListResponse
// @Router    /properties [get]
func (h *Handler) List(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter")
		return
	}
	h.page(c, f)
}

// ListByLandlord is the public, paginated listing of one landlord's properties.
// @Summary   List a landlord's properties
// @Tags      Properties
// @Param     id path int64 true "landlord id"
// @Param     page query int false "page" default(1)
// @Param     limit query int false "page size" default(20)
// @Success   200 {object} ListResponse
// @Router    /properties/landlord/{id} [get]
func (h *Handler) ListByLandlord(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid landlord id")
		return
	}
	h.page(c, domain.PropertyFilter{LandlordID: &id})
}

func (h *Handler) page(c *gin.Context, f domain.PropertyFilter) {
	page, ok1 := utils.QueryInt(c, "page", 1)
	limit, ok2 := utils.QueryInt(c, "limit", DefaultPageSize)
	if !ok1 || !ok2 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination")
		return
	}

	out, err := h.service.List(c.Request.Context(), f, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Search(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter")
		return
	}
	items, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

// Create lists a new property for the calling landlord.
// @Summary   Create property
// @Tags      Properties
// @Param     request body CreatePropertyRequest true "listing"
// @Success   201 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Router    /properties [post]
func (h *Handler) Create(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), me.UserID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Property created", gin.H{"property": p})
}

// Update edits the caller's own listing. The body is validated like Create.
// @Summary   Update property
// @Tags      Properties
// @Param     id path int64 true "property id"
// @Param     request body CreatePropertyRequest true "listing"
// @Success   200 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Failure   403 {object} map[string]interface{}
// @Failure   404 {object} map[string]interface{}
// @Router    /properties/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), me.UserID, id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Property updated successfully", gin.H{"property": p})
}

func (h *Handler) ListMine(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	items, err := h.service.ListMine(c.Request.Context(), me.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": items})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), me.UserID, id, domain.PropertyStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Status updated", gin.H{"property": p})
}

func (h *Handler) Delete(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	if err := h.service.Delete(c.Request.Context(), me.UserID, id); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Property deleted", nil)
}

func (h *Handler) AddComment(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), me.User, id, req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Comment added", gin.H{"comment": comment})
}

// Report flags a property for moderation.
// @Summary   Report property
// @Tags      Properties
// @Param     request body ReportRequest true "reason"
// @Success   200 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{} "reason missing or already reported"
// @Failure   404 {object} map[string]interface{}
// @Router    /properties/{id}/report [post]
func (h *Handler) Report(c *gin.Context) {
	me, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Report(c.Request.Context(), me.UserID, id, req.Reason); err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Property reported", nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be Available or Unavailable")
	case errors.Is(err, ErrInvalidWindow):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "available_until must not precede available_from")
	case errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "INVALID_IMAGE", "Image must be an image data URL or http(s) link")
	case errors.Is(err, ErrEmptyComment):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment text is required")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A reason is required")
	case errors.Is(err, ErrAlreadyReported):
		response.Error(c, http.StatusBadRequest, "ALREADY_REPORTED", "This property has already been reported")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
