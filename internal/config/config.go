// Package config provides configuration loading for hrflowd.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root hrflowd configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Webhooks WebhooksConfig `koanf:"webhooks"`
	Bridge   BridgeConfig   `koanf:"bridge"`
}

// ServerConfig controls the HTTP API listener.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// WebhooksConfig holds the category-specific workflow endpoints and the
// delivery timeout shared by all of them.
type WebhooksConfig struct {
	LeaveURL      string   `koanf:"leave_url"`
	ExpenseURL    string   `koanf:"expense_url"`
	OnboardingURL string   `koanf:"onboarding_url"`
	PulseURL      string   `koanf:"pulse_url"`
	Timeout       Duration `koanf:"timeout"`
}

// BridgeConfig controls the process-per-request MCP relay.
type BridgeConfig struct {
	// Command and Args launch the stdio MCP server subprocess.
	// Default: the running binary with the "stdio" argument.
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
	// InitTimeout bounds the MCP initialize handshake.
	InitTimeout Duration `koanf:"init_timeout"`
	// CallTimeout bounds a single relayed tool call, covering the
	// downstream webhook delivery it may trigger.
	CallTimeout Duration `koanf:"call_timeout"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// The original n8n workflow endpoints. Deployments override these.
	if cfg.Webhooks.LeaveURL == "" {
		cfg.Webhooks.LeaveURL = "https://bat-adjusted-anemone.ngrok-free.app/webhook/leave-request"
	}
	if cfg.Webhooks.ExpenseURL == "" {
		cfg.Webhooks.ExpenseURL = "https://bat-adjusted-anemone.ngrok-free.app/webhook/expense-request"
	}
	if cfg.Webhooks.OnboardingURL == "" {
		cfg.Webhooks.OnboardingURL = "https://starfish-special-bulldog.ngrok-free.app/webhook/onboarding"
	}
	if cfg.Webhooks.PulseURL == "" {
		cfg.Webhooks.PulseURL = "https://starfish-special-bulldog.ngrok-free.app/webhook/pulse-check"
	}
	if cfg.Webhooks.Timeout == 0 {
		cfg.Webhooks.Timeout = Duration(30 * time.Second)
	}

	if cfg.Bridge.InitTimeout == 0 {
		cfg.Bridge.InitTimeout = Duration(10 * time.Second)
	}
	if cfg.Bridge.CallTimeout == 0 {
		cfg.Bridge.CallTimeout = Duration(45 * time.Second)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	for name, raw := range map[string]string{
		"webhooks.leave_url":      c.Webhooks.LeaveURL,
		"webhooks.expense_url":    c.Webhooks.ExpenseURL,
		"webhooks.onboarding_url": c.Webhooks.OnboardingURL,
		"webhooks.pulse_url":      c.Webhooks.PulseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}

	if c.Webhooks.Timeout.Duration() <= 0 {
		return fmt.Errorf("webhooks timeout must be > 0")
	}
	if c.Bridge.InitTimeout.Duration() <= 0 || c.Bridge.CallTimeout.Duration() <= 0 {
		return fmt.Errorf("bridge timeouts must be > 0")
	}

	return nil
}
