package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentalconnect/internal/cache"
	"rentalconnect/internal/config"
	"rentalconnect/internal/database"
	"rentalconnect/internal/metrics"
	"rentalconnect/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const sessionJanitorInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// Redis is optional: it backs the login rate limiter and, when selected, sessions.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.Connect(cfg.RedisURL, m)
		if err != nil {
			if cfg.SessionBackend == "redis" {
				log.Fatalf("redis: %v", err)
			}
			log.Printf("level=warn msg=redis unavailable, login rate limit disabled err=%v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	srv, err := server.New(server.Deps{Config: cfg, DB: db, Redis: rdb, Metrics: m})
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.RunJanitor(ctx, sessionJanitorInterval)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv.Hub.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("level=error msg=graceful shutdown failed err=%v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
