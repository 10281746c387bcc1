package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/auth"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.nextID++
	newUser.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) error { return nil }

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// fakeJWTRepo keeps issued refresh tokens in memory; unknown tokens
// count as revoked, matching the database-backed behavior.
type fakeJWTRepo struct {
	stored  map[string]bool
	revoked map[string]bool
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{stored: make(map[string]bool), revoked: make(map[string]bool)}
}

func (r *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	r.stored[token] = true
	return nil
}

func (r *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	if !r.stored[token] {
		return true, nil
	}
	return r.revoked[token], nil
}

func (r *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.revoked[token] = true
	return nil
}

func newTestAuth() (auth.AuthService, *fakeUserRepo, *fakeJWTRepo, jwt.Service) {
	users := newFakeUserRepo()
	jwtRepo := newFakeJWTRepo()
	jwtService := jwt.NewJWTService("test-secret-key-for-auth", "15m", "720h")
	svc := NewAuthService(nil, users, jwtService, jwtRepo)
	return svc, users, jwtRepo, jwtService
}

func registerTestUser(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:            "Sam",
		Email:           "sam@example.com",
		Password:        "longenoughpw",
		ConfirmPassword: "longenoughpw",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegisterPersistsRefreshToken(t *testing.T) {
	svc, _, jwtRepo, _ := newTestAuth()

	tokens := registerTestUser(t, svc)
	assert.True(t, jwtRepo.stored[tokens.RefreshToken])
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	svc, _, jwtRepo, _ := newTestAuth()
	ctx := context.Background()

	tokens := registerTestUser(t, svc)

	_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	require.NoError(t, jwtRepo.RevokeRefreshToken(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _, _, jwtService := newTestAuth()
	ctx := context.Background()

	registerTestUser(t, svc)

	// Structurally valid refresh token that was never persisted, e.g.
	// issued before a database restore.
	stray, _, err := jwtService.GenerateRefreshToken("user-99")
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: stray})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogoutRevokesOnlyCallersTokens(t *testing.T) {
	svc, _, jwtRepo, jwtService := newTestAuth()
	ctx := context.Background()

	tokens := registerTestUser(t, svc)

	other, err := svc.Register(ctx, auth.RegisterRequest{
		Name:            "Riley",
		Email:           "riley@example.com",
		Password:        "longenoughpw",
		ConfirmPassword: "longenoughpw",
	})
	require.NoError(t, err)

	decoded, err := jwtService.JWTAuth().Decode(tokens.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, decoded.JwtID())

	authedCtx := jwtauth.NewContext(ctx, decoded, nil)
	require.NoError(t, svc.Logout(authedCtx, tokens.RefreshToken))

	assert.True(t, jwtService.IsTokenRevoked(decoded.JwtID()))
	assert.True(t, jwtRepo.revoked[tokens.RefreshToken])

	// The other account is untouched.
	otherDecoded, err := jwtService.JWTAuth().Decode(other.AccessToken)
	require.NoError(t, err)
	assert.False(t, jwtService.IsTokenRevoked(otherDecoded.JwtID()))
	assert.False(t, jwtRepo.revoked[other.RefreshToken])
}
