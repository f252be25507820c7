package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMySQL, cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.False(t, cfg.AllowCredentials())
	assert.Equal(t, 20, cfg.LowBatteryThreshold)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadCorsOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)
	assert.True(t, cfg.AllowCredentials())
}

func TestResolveMySQLDSNFromURL(t *testing.T) {
	dsn, err := resolveMySQLDSN(DatabaseConfig{MySQLURL: "mysql://app:pw@db.internal/hotel"})
	require.NoError(t, err)
	assert.Contains(t, dsn, "app:pw@tcp(db.internal:3306)/hotel")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestResolveMySQLDSNMissingName(t *testing.T) {
	_, err := resolveMySQLDSN(DatabaseConfig{MySQLURL: "mysql://app:pw@db.internal/"})
	assert.Error(t, err)
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
