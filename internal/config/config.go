// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the dashboard policy server.
// Connection parameters are read once at startup and never mutated; every
// request context receives a verbatim copy of them.
type Config struct {
	// MySQL connection parameters handed to the embedding framework.
	DBHost     string // required
	DBName     string // required
	DBUser     string
	DBPassword string
	DBSchema   string
	DBPort     int

	// Identity policy.
	AdminUserID    string // the one identity classified as Admin (default "11")
	SentinelUserID string // identity assigned when no userId header pair is present (default "guest")

	// Access policy.
	AllowedDatabases  []string // databases a data source may reach (default ["northwind"])
	UserAllowedTables []string // tables/procedures visible to the User role (default customers/orders/order_details)

	AuditDBPath string // path to SQLite decision audit file (default "bi_demo_audit.sqlite")
	ListenAddr  string // HTTP listen address (default ":5111")
	LogLevel    string // log level: debug, info, warn, error (default "info")
	Env         string // environment: "development" (default) or "production"

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables.
// Missing database connection parameters are a fatal error: the policy
// engine must never defer a bad connection config into per-request failures.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBName:         os.Getenv("DB_NAME"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSchema:       os.Getenv("DB_SCHEMA"),
		AdminUserID:    os.Getenv("ADMIN_USER_ID"),
		SentinelUserID: os.Getenv("SENTINEL_USER_ID"),
		AuditDBPath:    os.Getenv("AUDIT_DB_PATH"),
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Env:            os.Getenv("ENV"),
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("DB_PORT must be an integer, got %q", v)
		}
		cfg.DBPort = n
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	if v := os.Getenv("ALLOWED_DATABASES"); v != "" {
		cfg.AllowedDatabases = splitTrimmed(v)
	}
	if v := os.Getenv("USER_ALLOWED_TABLES"); v != "" {
		cfg.UserAllowedTables = splitTrimmed(v)
	}

	// Required connection parameters, fatal before the first request.
	if cfg.DBHost == "" {
		return nil, fmt.Errorf("DB_HOST must be set")
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME must be set")
	}

	// Defaults
	if cfg.AdminUserID == "" {
		cfg.AdminUserID = "11"
	}
	if cfg.SentinelUserID == "" {
		cfg.SentinelUserID = "guest"
	}
	if len(cfg.AllowedDatabases) == 0 {
		cfg.AllowedDatabases = []string{"northwind"}
	}
	if len(cfg.UserAllowedTables) == 0 {
		cfg.UserAllowedTables = []string{"customers", "orders", "order_details"}
	}
	if cfg.AuditDBPath == "" {
		cfg.AuditDBPath = "bi_demo_audit.sqlite"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5111"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}

	if cfg.DBUser == "" {
		cfg.Warnings = append(cfg.Warnings, "DB_USER not set, MySQL credential selection will produce empty usernames")
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.DBPassword == "" {
			return nil, fmt.Errorf("DB_PASSWORD must be set in production (ENV=production)")
		}
	} else if cfg.DBPassword == "" {
		cfg.Warnings = append(cfg.Warnings, "DB_PASSWORD not set, using empty password")
	}

	return cfg, nil
}

func splitTrimmed(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
