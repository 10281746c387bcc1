package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/session"
)

// apiClient is a thin wrapper over the EMS HTTP API. Every call carries
// the cached access token; the session store refreshes it when close to
// expiry.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
}

func newAPIClient(baseURL string, store *session.Store) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

type tokenPayload struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

// jwtClaim pulls a string claim out of a JWT without verifying it. The
// agent only needs the user id for display; the server re-verifies every
// token anyway.
func jwtClaim(token, claim string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	var claims map[string]interface{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	value, _ := claims[claim].(string)
	return value
}

func (c *apiClient) sessionFromTokens(email string, tokens tokenPayload) session.Session {
	return session.Session{
		UserID:          jwtClaim(tokens.AccessToken, "user_id"),
		Email:           email,
		AccessToken:     tokens.AccessToken,
		RefreshToken:    tokens.RefreshToken,
		AccessExpiresAt: time.Now().Add(time.Duration(tokens.AccessTokenExpiresIn) * time.Second),
	}
}

// Login exchanges credentials for tokens and caches the session.
func (c *apiClient) Login(ctx context.Context, email, password string) (session.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var tokens tokenPayload
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/login", body, &tokens, false); err != nil {
		return session.Session{}, err
	}

	sess := c.sessionFromTokens(email, tokens)
	if err := c.store.Save(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout revokes the server-side token and clears the local session.
func (c *apiClient) Logout(ctx context.Context) error {
	// Best effort: the local session is cleared even when the server
	// call fails.
	err := c.call(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, true)
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// RefreshSession implements session.RefreshFunc.
func (c *apiClient) RefreshSession(ctx context.Context, refreshToken string) (session.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var tokens struct {
		AccessToken          string `json:"access_token"`
		AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/refresh", body, &tokens, false); err != nil {
		return session.Session{}, err
	}

	cur, err := c.store.Current()
	if err != nil {
		return session.Session{}, err
	}
	cur.AccessToken = tokens.AccessToken
	cur.AccessExpiresAt = time.Now().Add(time.Duration(tokens.AccessTokenExpiresIn) * time.Second)
	return cur, nil
}

type statusPayload struct {
	State            string  `json:"state"`
	SessionID        *string `json:"session_id,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	ElapsedSeconds   int64   `json:"elapsed_seconds"`
	ScreenshotCount  int     `json:"screenshot_count"`
	LastScreenshotAt *string `json:"last_screenshot_at,omitempty"`
	InactivityWarned bool    `json:"inactivity_warned"`
}

type sessionPayload struct {
	ID              string  `json:"id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	TotalSeconds    int64   `json:"total_seconds"`
	IsActive        bool    `json:"is_active"`
	ScreenshotCount int     `json:"screenshot_count"`
}

func (c *apiClient) StartTracking(ctx context.Context) (sessionPayload, error) {
	var s sessionPayload
	err := c.call(ctx, http.MethodPost, "/api/v1/tracking/start", nil, &s, true)
	return s, err
}

func (c *apiClient) PauseTracking(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/v1/tracking/pause", nil, nil, true)
}

func (c *apiClient) ResumeTracking(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/v1/tracking/resume", nil, nil, true)
}

func (c *apiClient) StopTracking(ctx context.Context) (sessionPayload, error) {
	var s sessionPayload
	err := c.call(ctx, http.MethodPost, "/api/v1/tracking/stop", nil, &s, true)
	return s, err
}

func (c *apiClient) Heartbeat(ctx context.Context, elapsedSeconds int64) error {
	body := map[string]int64{"elapsed_seconds": elapsedSeconds}
	return c.call(ctx, http.MethodPost, "/api/v1/tracking/heartbeat", body, nil, true)
}

func (c *apiClient) TrackingStatus(ctx context.Context) (statusPayload, error) {
	var s statusPayload
	err := c.call(ctx, http.MethodGet, "/api/v1/tracking/status", nil, &s, true)
	return s, err
}

func (c *apiClient) Sessions(ctx context.Context) ([]sessionPayload, error) {
	var sessions []sessionPayload
	err := c.call(ctx, http.MethodGet, "/api/v1/tracking/sessions", nil, &sessions, true)
	return sessions, err
}

func (c *apiClient) call(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		if err := c.store.Refresh(ctx, c.RefreshSession); err != nil {
			return err
		}
		sess, err := c.store.Current()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response from server (status %d)", resp.StatusCode)
	}

	if !env.Success {
		if env.Error != nil {
			if len(env.Error.Details) > 0 {
				var details []string
				for field, msg := range env.Error.Details {
					details = append(details, fmt.Sprintf("%s: %s", field, msg))
				}
				return fmt.Errorf("%s (%s)", env.Error.Message, strings.Join(details, "; "))
			}
			return fmt.Errorf("%s", env.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
