// Package webhook delivers JSON payloads to external workflow endpoints.
//
// Delivery is a single POST with a bounded timeout and a status-code check.
// There are no retries: a failed delivery surfaces to the caller, who converts
// it into an error envelope.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/hrflowd/internal/logging"
)

// DefaultTimeout bounds a single webhook delivery.
const DefaultTimeout = 30 * time.Second

// Client posts payloads to workflow webhooks.
type Client struct {
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a webhook client. A zero timeout falls back to
// DefaultTimeout; a nil logger falls back to a no-op logger.
func NewClient(timeout time.Duration, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Deliver posts payload as JSON to url and returns the HTTP status code.
// A non-2xx status is not an error here; the caller decides what a given
// status means. The returned error covers encoding and transport failures.
func (c *Client) Deliver(ctx context.Context, url string, payload any) (int, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return 0, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "webhook delivery failed",
			zap.String("url", url),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return 0, fmt.Errorf("delivering to %s: %w", url, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug(ctx, "webhook delivered",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return resp.StatusCode, nil
}
