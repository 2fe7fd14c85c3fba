package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "RANDOMUSER_BASE_URL", "RANDOMUSER_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "https://randomuser.me/api/", cfg.RandomUser.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RandomUser.Timeout)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.DB.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("RANDOMUSER_BASE_URL", "http://localhost:3000/api/")
	t.Setenv("RANDOMUSER_TIMEOUT", "750ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "feed")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "users")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "http://localhost:3000/api/", cfg.RandomUser.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.RandomUser.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://feed:secret@db:5432/users?sslmode=disable", cfg.DB.GetDSN())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)

	for _, raw := range []string{"soon", "-1s"} {
		t.Setenv("RANDOMUSER_TIMEOUT", raw)
		_, err := Load()
		assert.Error(t, err, raw)
	}
}
