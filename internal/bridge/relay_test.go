package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helperRelay builds a relay whose subprocess is this test binary re-executed
// as TestHelperProcess in the given mode.
func helperRelay(t *testing.T, mode string, cfg Config) *Relay {
	t.Helper()
	t.Setenv("BRIDGE_HELPER_MODE", mode)
	cfg.Command = os.Args[0]
	cfg.Args = []string{"-test.run=^TestHelperProcess$"}
	return New(cfg, nil)
}

// TestHelperProcess is not a real test. Re-executed with BRIDGE_HELPER_MODE
// set, it stands in for the stdio subprocess the relay spawns: "serve" runs a
// small tool server on stdin/stdout, "hang" never answers the handshake.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv("BRIDGE_HELPER_MODE")
	if mode == "" {
		return
	}
	// Exit before the test framework writes anything to stdout.
	defer os.Exit(0)

	if mode == "hang" {
		time.Sleep(5 * time.Second)
		return
	}

	textOnly := func(payload string) *mcp.CallToolResult {
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: payload}}}
	}

	s := mcp.NewServer(&mcp.Implementation{Name: "bridge-helper", Version: "0.0.1"}, nil)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "submit_ok",
		Description: "always succeeds",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		return textOnly(`{"status":"success","type":"leave_request","message":"Leave request submitted successfully"}`), nil, nil
	})
	mcp.AddTool(s, &mcp.Tool{
		Name:        "submit_fail",
		Description: "reports an error envelope",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		return textOnly(`{"status":"error","type":"leave_request","message":"Error: connection refused"}`), nil, nil
	})

	if err := s.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func TestCall_Success(t *testing.T) {
	r := helperRelay(t, "serve", Config{})

	res, err := r.Call(context.Background(), "req-1", "submit_ok", map[string]any{"message": "two days off"})
	require.NoError(t, err)
	assert.Equal(t, "req-1", res.ID)
	assert.True(t, res.Success)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &payload))
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "leave_request", payload["type"])
}

func TestCall_ErrorEnvelopeIsNotSuccess(t *testing.T) {
	r := helperRelay(t, "serve", Config{})

	res, err := r.Call(context.Background(), "req-2", "submit_fail", nil)
	require.NoError(t, err)
	assert.False(t, res.Success)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &payload))
	assert.Equal(t, "error", payload["status"])
}

func TestCall_InitTimeout(t *testing.T) {
	r := helperRelay(t, "hang", Config{InitTimeout: 200 * time.Millisecond})

	_, err := r.Call(context.Background(), "req-3", "submit_ok", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to subprocess")
}

func TestCall_RequiresTool(t *testing.T) {
	r := New(Config{Command: "hrflowd"}, nil)
	_, err := r.Call(context.Background(), "req-4", "", nil)
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	r := New(Config{Command: "hrflowd"}, nil)
	assert.Equal(t, DefaultInitTimeout, r.cfg.InitTimeout)
	assert.Equal(t, DefaultCallTimeout, r.cfg.CallTimeout)
	assert.NotNil(t, r.logger)

	r = New(Config{
		Command:     "hrflowd",
		InitTimeout: 2 * time.Second,
		CallTimeout: 5 * time.Second,
	}, nil)
	assert.Equal(t, 2*time.Second, r.cfg.InitTimeout)
	assert.Equal(t, 5*time.Second, r.cfg.CallTimeout)
}

func TestPayloadSucceeded(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"success status", `{"status":"success"}`, true},
		{"error status", `{"status":"error","message":"boom"}`, false},
		{"no status field", `{"request_type":"leave","confidence":0.7}`, true},
		{"non-object payload", `"just text"`, true},
		{"null payload", `null`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payloadSucceeded(json.RawMessage(tt.payload)))
		})
	}
}
