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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 30*time.Second, cfg.Webhooks.Timeout.Duration())
	assert.Equal(t, 10*time.Second, cfg.Bridge.InitTimeout.Duration())
	assert.Equal(t, 45*time.Second, cfg.Bridge.CallTimeout.Duration())
	assert.Contains(t, cfg.Webhooks.LeaveURL, "/webhook/leave-request")
	assert.Contains(t, cfg.Webhooks.PulseURL, "/webhook/pulse-check")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`server:
  port: 9001
webhooks:
  leave_url: "http://localhost:5678/webhook/leave"
  timeout: "5s"
logging:
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5678/webhook/leave", cfg.Webhooks.LeaveURL)
	assert.Equal(t, 5*time.Second, cfg.Webhooks.Timeout.Duration())
	assert.Equal(t, "console", cfg.Logging.Format)
	// Unset fields still default.
	assert.Contains(t, cfg.Webhooks.ExpenseURL, "/webhook/expense-request")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0600))

	t.Setenv("SERVER_PORT", "9002")
	t.Setenv("WEBHOOKS_LEAVE_URL", "http://localhost:1234/hook")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9002, cfg.Server.Port)
	assert.Equal(t, "http://localhost:1234/hook", cfg.Webhooks.LeaveURL)
}

func TestLoad_RejectsWorldReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad logging format", func(t *testing.T) {
		cfg := base()
		cfg.Logging.Format = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-http webhook URL", func(t *testing.T) {
		cfg := base()
		cfg.Webhooks.PulseURL = "ftp://example.com/hook"
		assert.Error(t, cfg.Validate())
	})
}
