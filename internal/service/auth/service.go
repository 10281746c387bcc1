package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/auth"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/jwt"
	"github.com/saudkhanbpk/ems-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	postgresql.JWTRepository
	jwtService jwt.Service
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		JWTRepository:  jwtRepository,
		jwtService:     jwtService,
	}
}

// Register implements auth.AuthService. The first registered account
// becomes the admin; everyone after that is an employee.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	role := user.RoleEmployee
	existing, err := s.UserRepository.List(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	if len(existing) == 0 {
		role = user.RoleAdmin
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashStr,
		Role:         role,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// LoginWithGoogle implements auth.AuthService. Links the google id to
// an existing account, or creates an employee account on first login.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, googleID string) (auth.TokenResponse, error) {
	linked, err := s.UserRepository.LinkGoogleAccount(ctx, googleID, email)
	if err == nil {
		return s.issueTokens(ctx, linked)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
	}

	provider := "google"
	created, err := s.UserRepository.Create(ctx, user.User{
		Email:           email,
		Name:            email,
		Role:            user.RoleEmployee,
		OAuthProvider:   &provider,
		OAuthProviderID: &googleID,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create oauth user: %w", err)
	}
	return s.issueTokens(ctx, created)
}

// Logout implements auth.AuthService. The access token is revoked so
// it stops working before its natural expiry, and the refresh token is
// revoked in the database so it cannot mint new access tokens.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract token from context: %w", err)
	}

	s.jwtService.RevokeToken(token.JwtID())

	if refreshToken != "" {
		if err := s.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt - time.Now().Unix(),
	}, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.JWTRepository.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	now := time.Now().Unix()
	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt - now,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt - now,
	}, nil
}
