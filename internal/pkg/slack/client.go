package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a Slack webhook client. An empty webhookURL yields a
// client whose sends are skipped (useful in development).
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Message is the webhook payload.
type Message struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// APIError represents a non-2xx webhook response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack webhook error [%d]: %s", e.StatusCode, e.Body)
}

// IsConfigured reports whether a webhook URL is set.
func (c *Client) IsConfigured() bool {
	return c.webhookURL != ""
}

// Send posts a message to the configured webhook.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.IsConfigured() {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}
