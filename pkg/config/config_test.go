package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "db.internal")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.PostgresConfig.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Zero(t, cfg.CampaignCacheTTL)
	assert.Equal(t, "postgres://postgres:@db.internal:5432/storefront?sslmode=disable", cfg.DSN())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "placeholder")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, _, err := Load()
	assert.Error(t, err)
}
