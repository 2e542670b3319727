package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/profilehub/profilehub-go/internal/session"
)

const defaultSessionSecret = "dev-secret-change-in-production"

type Config struct {
	Port          string
	Env           string
	DataFile      string
	StaticDir     string
	SessionSecret string
	SessionTTL    time.Duration
	SessionDSN    string
	CookieSecure  bool
	AuthRateRPS   float64
	AuthRateBurst int
	LogLevel      slog.Level
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		DataFile:      getEnv("DATA_FILE", "db.json"),
		StaticDir:     getEnv("STATIC_DIR", "public"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionDSN:    getEnv("SESSION_DSN", ""),
	}

	var err error
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", session.DefaultTTL); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = getEnvBool("COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateRPS, err = getEnvFloat("AUTH_RATE_RPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateBurst, err = getEnvInt("AUTH_RATE_BURST", 10); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.IsProduction() && cfg.SessionSecret == defaultSessionSecret {
		return Config{}, errors.New("SESSION_SECRET must be set in production environment")
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid bool %q", key, v)
	}
	return b, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
