package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// refreshBuffer is how close to expiry a token may get before the store
// refreshes it proactively.
const refreshBuffer = 5 * time.Minute

// ErrNoSession is returned when no session is cached.
var ErrNoSession = errors.New("no active session")

// Session is the cached identity the tracking agent works with. It is
// persisted to disk so the agent can identify the current user after a
// restart without a network round trip.
type Session struct {
	UserID          string    `json:"user_id"`
	Email           string    `json:"user_email"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

// RefreshFunc exchanges a refresh token for a new session.
type RefreshFunc func(ctx context.Context, refreshToken string) (Session, error)

// Store caches the current session in memory and mirrors it to a JSON
// file.
type Store struct {
	path string
	now  func() time.Time

	mu      sync.Mutex
	current *Session
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads the persisted session, if any. A missing file is not an
// error; the store just starts signed out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}

	s.current = &sess
	return nil
}

// Current returns the cached session.
func (s *Store) Current() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Session{}, ErrNoSession
	}
	return *s.current, nil
}

// Save caches the session and persists it to disk.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &sess

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the cached session from memory and disk. Local state is
// always cleared even if the file removal fails.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// NeedsRefresh reports whether the access token expires within the
// refresh buffer.
func (s *Store) NeedsRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	return s.current.AccessExpiresAt.Sub(s.now()) <= refreshBuffer
}

// Refresh exchanges the cached refresh token for a new session when the
// access token is close to expiry. It is a no-op otherwise.
func (s *Store) Refresh(ctx context.Context, fn RefreshFunc) error {
	if !s.NeedsRefresh() {
		return nil
	}

	cur, err := s.Current()
	if err != nil {
		return err
	}

	fresh, err := fn(ctx, cur.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return s.Save(fresh)
}

// AutoRefresh refreshes the session on a fixed cadence until ctx is
// cancelled.
func (s *Store) AutoRefresh(ctx context.Context, every time.Duration, fn RefreshFunc) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx, fn); err != nil {
				slog.Error("session auto-refresh failed", "error", err)
			}
		}
	}
}
