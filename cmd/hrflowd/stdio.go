package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/hrflowd/internal/config"
	"github.com/fyrsmithlabs/hrflowd/internal/mcp"
)

// runStdio serves the MCP tools over stdio. All logging goes to stderr so
// stdout carries only protocol frames.
func runStdio(configPath string) error {
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
	zl.Info("Starting hrflowd in stdio mode", zap.String("version", version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	rtr := buildRouter(cfg, logger)

	server, err := mcp.NewServer(&mcp.Config{
		Name:    "hrflowd",
		Version: version,
		Logger:  zl.Named("mcp"),
	}, rtr)
	if err != nil {
		return fmt.Errorf("create mcp server: %w", err)
	}

	return server.Run(ctx)
}
