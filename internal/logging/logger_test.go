package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		logger, err := NewLogger(nil)
		require.NoError(t, err)
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Format = "xml"
		_, err := NewLogger(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format")
	})

	t.Run("invalid output rejected", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Output = "/var/log/hrflowd.log"
		_, err := NewLogger(cfg)
		require.Error(t, err)
	})

	t.Run("console format", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Format = "console"
		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad format", func(c *Config) { c.Format = "text" }, true},
		{"bad output", func(c *Config) { c.Output = "file" }, true},
		{"negative caller skip", func(c *Config) { c.Caller.Skip = -1 }, true},
		{"empty field key", func(c *Config) { c.Fields = map[string]string{"": "x"} }, true},
		{"empty field value", func(c *Config) { c.Fields = map[string]string{"k": ""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContextFields(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, ContextFields(context.Background()))
	})

	t.Run("request id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", RequestIDFromContext(ctx))

		logger := NewTestLogger()
		logger.Info(ctx, "handled")
		logger.AssertField(t, "handled", "request.id", "req-123")
	})

	t.Run("employee id", func(t *testing.T) {
		ctx := WithEmployeeID(context.Background(), "EMP001")
		assert.Equal(t, "EMP001", EmployeeIDFromContext(ctx))

		logger := NewTestLogger()
		logger.Info(ctx, "routed")
		logger.AssertField(t, "routed", "employee.id", "EMP001")
	})

	t.Run("invalid request id panics", func(t *testing.T) {
		assert.Panics(t, func() {
			WithRequestID(context.Background(), "bad id with spaces")
		})
		assert.Panics(t, func() {
			WithRequestID(context.Background(), "")
		})
	})
}

func TestLoggerMethods(t *testing.T) {
	logger := NewTestLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug msg")
	logger.Info(ctx, "info msg", zap.String("key", "value"))
	logger.Warn(ctx, "warn msg")
	logger.Error(ctx, "error msg")

	logger.AssertLogged(t, zapcore.DebugLevel, "debug msg")
	logger.AssertLogged(t, zapcore.InfoLevel, "info msg")
	logger.AssertLogged(t, zapcore.WarnLevel, "warn msg")
	logger.AssertLogged(t, zapcore.ErrorLevel, "error msg")
	logger.AssertField(t, "info msg", "key", "value")
}

func TestChildLoggers(t *testing.T) {
	logger := NewTestLogger()

	child := logger.With(zap.String("component", "router"))
	child.Info(context.Background(), "child msg")
	logger.AssertField(t, "child msg", "component", "router")

	named := logger.Named("webhook")
	named.Info(context.Background(), "named msg")
	entries := logger.FilterMessage("named msg").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "webhook", entries[0].LoggerName)
}

func TestFromContext(t *testing.T) {
	t.Run("missing logger returns nop", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
	})

	t.Run("round trip", func(t *testing.T) {
		test := NewTestLogger()
		ctx := WithLogger(context.Background(), test.Logger)
		got := FromContext(ctx)
		got.Info(ctx, "via context")
		test.AssertLogged(t, zapcore.InfoLevel, "via context")
	})
}
