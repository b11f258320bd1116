package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultSessionSecret = "change-me-session-secret"
	defaultDatabaseURL   = "rentalconnect.db"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	CORSOrigin  string `mapstructure:"CORS_ORIGIN"`

	SessionSecret  string        `mapstructure:"SESSION_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	CookieName     string        `mapstructure:"COOKIE_NAME"`
	CookieSecure   bool          `mapstructure:"COOKIE_SECURE"`
	CookieSameSite string        `mapstructure:"COOKIE_SAMESITE"`

	RedisURL        string        `mapstructure:"REDIS_URL"`
	LoginRateLimit  int           `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindow time.Duration `mapstructure:"LOGIN_RATE_WINDOW"`

	HTTPReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	MaxImageBytes    int           `mapstructure:"UPLOADS_MAX_IMAGE_BYTES"`

	// DisableAdminSignup turns off role=Admin on POST /api/auth/register.
	DisableAdminSignup bool `mapstructure:"DISABLE_ADMIN_SIGNUP"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "1629")
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_BACKEND", "db")
	v.SetDefault("COOKIE_NAME", "rc_session")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAMESITE", "Lax")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", "1m")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("UPLOADS_MAX_IMAGE_BYTES", 5*1024*1024)
	v.SetDefault("DISABLE_ADMIN_SIGNUP", false)
}

// Load reads an optional .env file, then the environment, over built-in defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	cfg.SessionSecret = strings.TrimSpace(cfg.SessionSecret)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("config loaded: env=%s port=%s session_backend=%s cookie_secure=%t cookie_samesite=%s",
		cfg.AppEnv, cfg.Port, cfg.SessionBackend, cfg.CookieSecure, cfg.CookieSameSite)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be > 0")
	}
	if c.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be > 0")
	}
	if c.HTTPReadTimeout <= 0 || c.HTTPWriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be > 0")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("UPLOADS_MAX_IMAGE_BYTES must be > 0")
	}

	switch c.SessionBackend {
	case "db":
	case "redis":
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of: db, redis")
	}

	sameSite := strings.ToLower(strings.TrimSpace(c.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !c.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if c.IsProdLike() {
		if c.SessionSecret == defaultSessionSecret {
			return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
		}
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("in prod/release SESSION_SECRET must be at least 32 characters")
		}
		if !c.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

// RateLimitEnabled is false in test and development so local runs are not throttled.
func (c *Config) RateLimitEnabled() bool {
	switch c.AppEnv {
	case "test", "development", "dev":
		return false
	}
	return strings.TrimSpace(c.RedisURL) != ""
}
