package pdfgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client renders HTML to PDF through an external render service
// (a Gotenberg-compatible HTML conversion endpoint).
type Client struct {
	renderURL  string
	httpClient *http.Client
}

// NewClient creates a PDF render client. An empty renderURL yields a
// client whose RenderHTML always fails with ErrNotConfigured.
func NewClient(renderURL string) *Client {
	return &Client{
		renderURL:  renderURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ErrNotConfigured is returned when no render service URL is set.
var ErrNotConfigured = fmt.Errorf("pdf render service is not configured")

// APIError represents a non-2xx render response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pdf render error [%d]: %s", e.StatusCode, e.Body)
}

// RenderHTML converts an HTML document to PDF bytes.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	if c.renderURL == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write([]byte(html)); err != nil {
		return nil, fmt.Errorf("failed to write html part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.renderURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call render service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(msg)}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered pdf: %w", err)
	}

	return pdf, nil
}
