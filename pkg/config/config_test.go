package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "http://localhost:8080/api", cfg.Client.APIURL)
	assert.Equal(t, 20, cfg.Client.RateLimitPerSecond)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  request_timeout: 5s
  cors_origins: [https://app.example.com]
logging:
  level: debug
client:
  api_url: http://api.internal/api
  rate_limit_per_second: 5
ui:
  theme_file: /tmp/theme
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "http://api.internal/api", cfg.Client.APIURL)
	assert.Equal(t, 5, cfg.Client.RateLimitPerSecond)
	assert.Equal(t, "/tmp/theme", cfg.UI.ThemeFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err = Load()
	assert.ErrorContains(t, err, "unknown storage driver")

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("STORAGE_DRIVER", "")
	_, err = Load()
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getIntEnv("SOME_INT", 7))

	t.Setenv("SOME_DURATION", "2m")
	assert.Equal(t, 2*time.Minute, getDurationEnv("SOME_DURATION", time.Second))

	t.Setenv("SOME_LIST", " , ")
	assert.Empty(t, getListEnv("SOME_LIST", []string{"x"}))
}
