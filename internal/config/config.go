package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "PayoutDesk"
	defaultAppEnv        = "development"
	defaultPort          = "3000"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultTokenTTL      = 24 * time.Hour
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultRateLimitMax  = 100
	defaultRateWindow    = 15 * time.Minute
	defaultStaticDir     = "./public"

	// defaultJWTSecret is the fallback used when JWT_SECRET is unset. Running
	// with it means every deployment shares a signing key; it exists so a
	// fresh checkout boots, not as a production configuration.
	defaultJWTSecret = "change-me-payout-desk-secret"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	TokenTTL        time.Duration
	AdminUsername   string
	AdminPassword   string
	RateLimitMax    int
	RateLimitWindow time.Duration
	ShutdownPeriod  time.Duration
	StaticDir       string
}

// Load reads configuration values from the environment and populates a Config
// instance. REDIS_URL is optional; without it the rate limiter is disabled.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:        defaultTokenTTL,
		AdminUsername:   getEnv("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:   getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		RateLimitMax:    defaultRateLimitMax,
		RateLimitWindow: defaultRateWindow,
		ShutdownPeriod:  defaultShutdownDelay,
		StaticDir:       getEnv("STATIC_DIR", defaultStaticDir),
	}

	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
		}
		cfg.RateLimitMax = n
	}

	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
		cfg.RateLimitWindow = d
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// UsingDefaultSecret reports whether the process runs on the insecure
// built-in signing key.
func (c Config) UsingDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
