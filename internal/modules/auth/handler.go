package auth

import (
	"errors"
	"net/http"

	"rentalconnect/internal/middleware"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(service *Service, sessions Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterPublicRoutes mounts register/login/logout. loginGuard runs before Login
// (the per-IP rate limiter); pass nil to skip it.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, loginGuard gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/register", h.Register)
	if loginGuard != nil {
		g.POST("/login", loginGuard, h.Login)
	} else {
		g.POST("/login", h.Login)
	}
	g.POST("/logout", h.Logout)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/profile", h.Profile)
}

// Register creates an account and starts a session.
// @Summary   Register
// @Tags      Auth
// @Param     request body RegisterRequest true "name, email, password, role (Renter|Landlord|Admin)"
// @Success   201 {object} map[string]interface{}
// @Failure   400 {object} map[string]interface{}
// @Router    /auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusBadRequest, "USER_EXISTS", "User already exists")
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be Renter, Landlord or Admin")
		case errors.Is(err, ErrAdminSignup):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Admin registration is disabled")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Server error")
		}
		return
	}

	if _, err := h.sessions.Start(c.Request.Context(), c.Writer, user); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "SESSION_ERROR", "Server error")
		return
	}

	response.SuccessMessage(c, http.StatusCreated, "Registered successfully", gin.H{"user": user})
}

// Login verifies credentials and starts a session.
// @Summary   Login
// @Tags      Auth
// @Param     request body LoginRequest true "email, password"
// @Success   200 {object} map[string]interface{}
// @Failure   401 {object} map[string]interface{}
// @Failure   429 {object} map[string]interface{}
// @Router    /auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Server error")
		return
	}

	if _, err := h.sessions.Start(c.Request.Context(), c.Writer, user); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "SESSION_ERROR", "Server error")
		return
	}

	response.SuccessMessage(c, http.StatusOK, "Logged in successfully", gin.H{"user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Writer, c.Request); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Server error")
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) Profile(c *gin.Context) {
	id, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": id.User})
}
