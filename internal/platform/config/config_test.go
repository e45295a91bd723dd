package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "Token", cfg.AdminAuthScheme)
		assert.Equal(t, ":8090", cfg.PortalAddr)
		assert.False(t, cfg.SingleFlight)
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("CAMPUS_API_BASE_URL", "https://api.example.test/api")
		t.Setenv("CAMPUS_HTTP_TIMEOUT", "3s")
		t.Setenv("CAMPUS_ADMIN_AUTH_SCHEME", "Bearer")
		t.Setenv("CAMPUS_SINGLE_FLIGHT", "true")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.test/api", cfg.APIBaseURL)
		assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "Bearer", cfg.AdminAuthScheme)
		assert.True(t, cfg.SingleFlight)
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("CAMPUS_HTTP_TIMEOUT", "soon")

		_, err := FromEnv()
		assert.Error(t, err)
	})
}
