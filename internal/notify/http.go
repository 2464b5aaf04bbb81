package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient posts JSON payloads with a fixed retry schedule. Rate
// limits (429) and server errors are retried; other client errors fail
// immediately.
type HTTPClient struct {
	client *http.Client
	delays []time.Duration
}

// NewHTTPClient creates a client with the default retry schedule:
// immediate, then 5s and 30s later.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
		delays: []time.Duration{0, 5 * time.Second, 30 * time.Second},
	}
}

// Post sends body to url, one attempt per schedule slot. Returns the
// last attempt's error when the schedule is exhausted.
func (c *HTTPClient) Post(ctx context.Context, url string, body []byte) error {
	var lastErr error

	for _, delay := range c.delays {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "Countdown/1.0")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error (HTTP %d): %s", resp.StatusCode, respBody)
		default:
			return fmt.Errorf("client error (HTTP %d): %s", resp.StatusCode, respBody)
		}
	}

	return lastErr
}
