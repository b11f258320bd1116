// Package server assembles repositories, services and handlers into the HTTP router.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"rentalconnect/internal/config"
	"rentalconnect/internal/metrics"
	"rentalconnect/internal/middleware"
	"rentalconnect/internal/modules/admin"
	"rentalconnect/internal/modules/analytics"
	"rentalconnect/internal/modules/auth"
	"rentalconnect/internal/modules/booking"
	"rentalconnect/internal/modules/dashboard"
	"rentalconnect/internal/modules/message"
	"rentalconnect/internal/modules/payment"
	"rentalconnect/internal/modules/profile"
	"rentalconnect/internal/modules/property"
	"rentalconnect/internal/modules/wishlist"
	jwtsvc "rentalconnect/internal/pkg/jwt"
	"rentalconnect/internal/repository"
	"rentalconnect/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const banner = "Rental Connect API running with sessions & controllers..."

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client // optional unless SESSION_BACKEND=redis
	Metrics *metrics.Metrics
}

type Server struct {
	Router   *gin.Engine
	Hub      *message.Hub
	Sessions *session.Manager
}

// NewSessionStore picks the session backend named by cfg.
func NewSessionStore(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (session.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("SESSION_BACKEND=redis but no redis client")
		}
		return repository.NewRedisSessionStore(rdb), nil
	default:
		return repository.NewSessionRepository(db), nil
	}
}

func NewSessionManager(cfg *config.Config, store session.Store) *session.Manager {
	return session.NewManager(store, jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL), cfg.SessionTTL, session.CookieConfig{
		Name:     cfg.CookieName,
		Secure:   cfg.CookieSecure,
		SameSite: session.ParseSameSite(cfg.CookieSameSite),
	})
}

func New(d Deps) (*Server, error) {
	cfg := d.Config

	store, err := NewSessionStore(cfg, d.DB, d.Redis)
	if err != nil {
		return nil, err
	}
	sessions := NewSessionManager(cfg, store)

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	propertyRepo := repository.NewPropertyRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	wishlistRepo := repository.NewWishlistRepository(d.DB)

	// Services and handlers
	authService := auth.NewService(userRepo, bcrypt.DefaultCost)
	if cfg.DisableAdminSignup {
		authService.DisableAdminSignup()
	}
	authHandler := auth.NewHandler(authService, sessions)
	profileHandler := profile.NewHandler(profile.NewService(userRepo, cfg.MaxImageBytes))
	wishlistHandler := wishlist.NewHandler(wishlistRepo, propertyRepo)
	propertyHandler := property.NewHandler(property.NewService(propertyRepo, d.Metrics, cfg.MaxImageBytes))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, propertyRepo, d.Metrics))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, propertyRepo, d.Metrics, log.Printf))

	hub := message.NewHub(d.Metrics)
	messageHandler := message.NewHandler(
		message.NewService(messageRepo, userRepo, hub),
		message.NewWSHandler(hub, cfg.CORSOrigin),
	)

	adminHandler := admin.NewHandler(admin.NewService(userRepo, propertyRepo, sessions))
	analyticsHandler := analytics.NewHandler(analytics.NewService(paymentRepo, propertyRepo))
	dashboardHandler := dashboard.NewHandler()

	gate := middleware.NewSessionAuth(sessions, userRepo)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORSOrigin),
	)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, banner) })
	r.GET("/healthz", healthz(d.DB))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	// public
	loginGuard := middleware.RateLimit(d.Redis, middleware.RateLimitConfig{
		Name:   "login",
		Limit:  cfg.LoginRateLimit,
		Window: cfg.LoginRateWindow,
		Policy: middleware.FailOpen,
	}, d.Metrics)
	authHandler.RegisterPublicRoutes(api, loginGuard)
	propertyHandler.RegisterPublicRoutes(api)

	// session required
	protected := api.Group("")
	protected.Use(gate.AuthRequired())
	{
		authHandler.RegisterProtectedRoutes(protected)
		profileHandler.RegisterRoutes(protected)
		wishlistHandler.RegisterRoutes(protected)
		propertyHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
		messageHandler.RegisterRoutes(protected)
		analyticsHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(gate.Admin())
	adminHandler.RegisterRoutes(adminGroup)

	return &Server{Router: r, Hub: hub, Sessions: sessions}, nil
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// RunJanitor prunes expired sessions every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sessions.Cleanup(ctx)
			if err != nil {
				log.Printf("level=warn msg=session cleanup failed err=%v", err)
				continue
			}
			if n > 0 {
				log.Printf("level=info msg=expired sessions pruned count=%d", n)
			}
		}
	}
}
