package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "user@example.com", user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claim, ok := decoded.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "user-1", claim)

	typ, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", typ)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateRefreshToken("user-2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	typ, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "refresh", typ)
}

func TestAccessTokensCarryDistinctJTI(t *testing.T) {
	svc := newTestService()

	tokenA, _, err := svc.GenerateAccessToken("user-a", "a@example.com", user.RoleEmployee)
	require.NoError(t, err)
	tokenB, _, err := svc.GenerateAccessToken("user-b", "b@example.com", user.RoleEmployee)
	require.NoError(t, err)

	decodedA, err := svc.JWTAuth().Decode(tokenA)
	require.NoError(t, err)
	decodedB, err := svc.JWTAuth().Decode(tokenB)
	require.NoError(t, err)

	require.NotEmpty(t, decodedA.JwtID())
	require.NotEmpty(t, decodedB.JwtID())
	assert.NotEqual(t, decodedA.JwtID(), decodedB.JwtID())

	// Revoking one user's token must leave everyone else signed in.
	svc.RevokeToken(decodedA.JwtID())
	assert.True(t, svc.IsTokenRevoked(decodedA.JwtID()))
	assert.False(t, svc.IsTokenRevoked(decodedB.JwtID()))
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("user-3")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestSSEToken(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateSSEToken("user-4")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-4", userID)

	// Access tokens must not pass SSE validation.
	access, _, err := svc.GenerateAccessToken("user-4", "u@example.com", user.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}
