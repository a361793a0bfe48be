package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_NAME", "northwind")
	t.Setenv("DB_USER", "reports")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_SCHEMA", "northwind")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("ADMIN_USER_ID", "42")
	t.Setenv("ALLOWED_DATABASES", "northwind, sales")
	t.Setenv("USER_ALLOWED_TABLES", "customers,orders")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.DBHost)
	assert.Equal(t, "northwind", cfg.DBName)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, "42", cfg.AdminUserID)
	assert.Equal(t, []string{"northwind", "sales"}, cfg.AllowedDatabases)
	assert.Equal(t, []string{"customers", "orders"}, cfg.UserAllowedTables)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "northwind")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "11", cfg.AdminUserID)
	assert.Equal(t, "guest", cfg.SentinelUserID)
	assert.Equal(t, []string{"northwind"}, cfg.AllowedDatabases)
	assert.Equal(t, []string{"customers", "orders", "order_details"}, cfg.UserAllowedTables)
	assert.Equal(t, ":5111", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100.0, cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	// Missing credentials are warnings in development, not errors.
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadFromEnv_MissingHostIsFatal(t *testing.T) {
	t.Setenv("DB_NAME", "northwind")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoadFromEnv_MissingDatabaseIsFatal(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestLoadFromEnv_BadPort(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "northwind")
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "northwind")
	t.Setenv("DB_USER", "reports")
	t.Setenv("ENV", "production")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}
