// Hrflowd routes natural language HR requests to workflow webhooks.
//
// The daemon classifies free-text requests (leave, expense, onboarding,
// pulse check), extracts structured fields, and forwards them to the
// configured n8n workflow endpoints. It serves an HTTP API by default and
// speaks MCP over stdio when started with the "stdio" argument.
//
// Configuration comes from a YAML file plus environment variable overrides.
// See internal/config for details.
//
// Usage:
//
//	# Start the HTTP API with defaults
//	hrflowd
//
//	# Configure via environment
//	SERVER_PORT=9000 WEBHOOKS_LEAVE_URL=https://example.com/leave hrflowd
//
//	# Serve MCP tools over stdio
//	hrflowd stdio
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/hrflowd/internal/bridge"
	"github.com/fyrsmithlabs/hrflowd/internal/config"
	hrhttp "github.com/fyrsmithlabs/hrflowd/internal/http"
	"github.com/fyrsmithlabs/hrflowd/internal/logging"
	"github.com/fyrsmithlabs/hrflowd/internal/router"
	"github.com/fyrsmithlabs/hrflowd/internal/webhook"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/hrflowd/config.yaml)")
	flag.Parse()
	args := flag.Args()

	// Handle subcommands
	if len(args) > 0 {
		switch args[0] {
		case "stdio":
			if err := runStdio(*configPath); err != nil {
				log.Fatalf("Server error: %v", err)
			}
			return
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  hrflowd           Start the HTTP API\n")
			fmt.Fprintf(os.Stderr, "  hrflowd stdio     Serve MCP tools over stdio\n")
			fmt.Fprintf(os.Stderr, "  hrflowd version   Show version information\n")
			os.Exit(1)
		}
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("hrflowd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the HTTP API and blocks until context is cancelled.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	zl := logger.Underlying()
	zl.Info("Starting hrflowd",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout.Duration()))

	rtr := buildRouter(cfg, logger)

	// A nil *Relay must stay a nil interface so the bridge endpoint
	// reports itself unconfigured.
	var relay hrhttp.ToolRelay
	if r := buildRelay(cfg, zl); r != nil {
		relay = r
	}

	srv, err := hrhttp.NewServer(rtr, relay, logger.Named("http"), &hrhttp.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}

	zl.Info("Server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("metrics_endpoint", "/metrics"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildRouter wires the webhook client and endpoints into a router.
func buildRouter(cfg *config.Config, logger *logging.Logger) *router.Router {
	client := webhook.NewClient(cfg.Webhooks.Timeout.Duration(), logger.Named("webhook"))
	endpoints := router.Endpoints{
		Leave:      cfg.Webhooks.LeaveURL,
		Expense:    cfg.Webhooks.ExpenseURL,
		Onboarding: cfg.Webhooks.OnboardingURL,
		Pulse:      cfg.Webhooks.PulseURL,
	}
	return router.New(client, endpoints, logger.Named("router"))
}

// buildRelay creates the bridge relay. The default subprocess is this binary
// in stdio mode.
func buildRelay(cfg *config.Config, logger *zap.Logger) *bridge.Relay {
	command := cfg.Bridge.Command
	args := cfg.Bridge.Args
	if command == "" {
		exe, err := os.Executable()
		if err != nil {
			logger.Warn("cannot resolve own binary, bridge disabled", zap.Error(err))
			return nil
		}
		command = exe
		args = []string{"stdio"}
	}

	return bridge.New(bridge.Config{
		Command:     command,
		Args:        args,
		InitTimeout: cfg.Bridge.InitTimeout.Duration(),
		CallTimeout: cfg.Bridge.CallTimeout.Duration(),
	}, logger.Named("bridge"))
}

// initLogger builds the structured logger from config.
func initLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Logging.Level, err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format
	return logging.NewLogger(logCfg)
}
