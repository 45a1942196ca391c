// Package bridge relays tool calls from HTTP clients to a stdio instance of
// the daemon. Each call spawns a fresh subprocess, performs the protocol
// handshake, invokes the tool, and tears the process down. That keeps the
// relay stateless at the cost of startup latency per call.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Default timeouts when config leaves them unset.
const (
	DefaultInitTimeout = 10 * time.Second
	DefaultCallTimeout = 45 * time.Second
)

// Config controls how the relay spawns and talks to the subprocess.
type Config struct {
	// Command is the binary to spawn for each call. Args are passed as-is.
	Command string
	Args    []string

	// InitTimeout bounds the spawn plus handshake. CallTimeout bounds the
	// tool invocation itself.
	InitTimeout time.Duration
	CallTimeout time.Duration
}

// Result is the relay's answer to one tool call.
type Result struct {
	ID      string          `json:"id,omitempty"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Relay spawns a subprocess per tool call.
type Relay struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a relay. A nil logger falls back to a no-op logger.
func New(cfg Config, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = DefaultInitTimeout
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	return &Relay{cfg: cfg, logger: logger}
}

// Call spawns the subprocess, invokes tool with args, and returns the decoded
// result. The returned error covers transport and protocol failures only; a
// tool that ran but reported failure comes back as Success=false.
func (r *Relay) Call(ctx context.Context, id, tool string, args map[string]any) (*Result, error) {
	if tool == "" {
		return nil, fmt.Errorf("tool name is required")
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	r.logger.Info("bridge call",
		zap.String("id", id),
		zap.String("tool", tool),
	)

	initCtx, cancelInit := context.WithTimeout(ctx, r.cfg.InitTimeout)
	defer cancelInit()

	cmd := exec.CommandContext(ctx, r.cfg.Command, r.cfg.Args...)
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "hrflowd-bridge",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(initCtx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to subprocess: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.logger.Debug("session close", zap.Error(cerr))
		}
	}()

	callCtx, cancelCall := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancelCall()

	res, err := session.CallTool(callCtx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", tool, err)
	}

	payload := extractText(res)
	result := &Result{
		ID:      id,
		Success: !res.IsError && payloadSucceeded(payload),
		Data:    payload,
	}

	r.logger.Info("bridge call done",
		zap.String("id", id),
		zap.String("tool", tool),
		zap.Bool("success", result.Success),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// extractText pulls the first text block out of a tool result. Tools in this
// server always return a single JSON text block.
func extractText(res *mcp.CallToolResult) json.RawMessage {
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			if json.Valid([]byte(tc.Text)) {
				return json.RawMessage(tc.Text)
			}
			quoted, _ := json.Marshal(tc.Text)
			return quoted
		}
	}
	return json.RawMessage("null")
}

// payloadSucceeded inspects the decoded payload for an explicit error status.
// Payloads without a status field count as success.
func payloadSucceeded(payload json.RawMessage) bool {
	var envelope struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return true
	}
	return envelope.Status != "error"
}
