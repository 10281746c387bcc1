package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(expiresIn time.Duration) Session {
	return Session{
		UserID:          "user-1",
		Email:           "user@example.com",
		AccessToken:     "access-token",
		RefreshToken:    "refresh-token",
		AccessExpiresAt: time.Now().Add(expiresIn),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	require.NoError(t, store.Save(testSession(time.Hour)))

	// A fresh store restores the session from disk.
	restored := NewStore(path)
	require.NoError(t, restored.Load())

	sess, err := restored.Current()
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, "user@example.com", sess.Email)
	assert.Equal(t, "refresh-token", sess.RefreshToken)
}

func TestLoadMissingFileIsSignedOut(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, store.Load())

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	require.NoError(t, store.Save(testSession(time.Hour)))

	require.NoError(t, store.Clear())

	_, err := store.Current()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine; the file is already gone.
	require.NoError(t, store.Clear())
}

func TestNeedsRefresh(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession(time.Hour)))
	assert.False(t, store.NeedsRefresh())

	require.NoError(t, store.Save(testSession(2*time.Minute)))
	assert.True(t, store.NeedsRefresh())
}

func TestRefreshReplacesSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	require.NoError(t, store.Save(testSession(time.Minute)))

	err := store.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (Session, error) {
		assert.Equal(t, "refresh-token", refreshToken)
		fresh := testSession(time.Hour)
		fresh.AccessToken = "fresh-access"
		return fresh, nil
	})
	require.NoError(t, err)

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", sess.AccessToken)
	assert.False(t, store.NeedsRefresh())
}

func TestRefreshSkippedWhenTokenFresh(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(testSession(time.Hour)))

	err := store.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (Session, error) {
		t.Fatal("refresh must not be called for a fresh token")
		return Session{}, nil
	})
	require.NoError(t, err)
}

func TestRefreshPropagatesFailure(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(testSession(time.Minute)))

	wantErr := errors.New("token revoked")
	err := store.Refresh(context.Background(), func(ctx context.Context, refreshToken string) (Session, error) {
		return Session{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The stale session is kept so the caller can surface a sign-in.
	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "access-token", sess.AccessToken)
}
