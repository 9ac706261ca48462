package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadWithoutEnvFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "6001")
	t.Setenv("DB_NAME", "cam_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6001, cfg.Port)
	assert.Equal(t, "cam_test", cfg.Database.Name)
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "cash_advance_monitoring", cfg.Database.Name)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.StatsCache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.StatsCache.TTL)
}

func TestLoadReadsEnvFile(t *testing.T) {
	chdirTemp(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("PORT=7002\nALLOWED_ORIGINS=https://app.example.com, https://*.vercel.app\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7002, cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://*.vercel.app"}, cfg.CORS.AllowedOrigins)
}
