package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// AuthService handles signup, login, logout and token authentication
type AuthService struct {
	userRepo  ports.UserRepository
	tokens    ports.TokenService
	revoker   ports.TokenRevoker
	cfg       config.AuthConfig
	logger    *logger.Logger
	dummyHash []byte
}

// NewAuthService creates a new auth service. revoker may be nil, in which case
// logout only acknowledges the request.
func NewAuthService(userRepo ports.UserRepository, tokens ports.TokenService, revoker ports.TokenRevoker, cfg config.AuthConfig, logger *logger.Logger) (*AuthService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	cfg.BcryptCost = cost

	// Compared against on unknown emails so both login failures cost the same
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		revoker:   revoker,
		cfg:       cfg,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

var _ ports.AuthService = (*AuthService)(nil)

// Signup creates a new user account with a bcrypt password hash
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (*entities.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User signed up", "user_id", user.ID)

	return user, nil
}

// Login authenticates a user and returns a signed token.
// Unknown email and wrong password both yield entities.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			s.logger.Warnw("Login attempt with unknown email")
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warnw("Login attempt with invalid password", "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Infow("User logged in", "user_id", user.ID)

	return &ports.LoginResponse{Token: token}, nil
}

// Logout revokes the token when revocation is enabled; otherwise the token
// stays valid until it expires.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if !s.revocationEnabled() {
		return nil
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if claims.TokenID == "" {
		return nil
	}

	ttl := s.cfg.RevocationTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(*claims.ExpiresAt)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Infow("Token revoked", "user_id", claims.UserID, "token_id", claims.TokenID)
	return nil
}

// Authenticate verifies the token. The revocation store is only consulted
// when revocation is enabled.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*ports.TokenClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if s.revocationEnabled() && claims.TokenID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, entities.ErrTokenRevoked
		}
	}

	return claims, nil
}

func (s *AuthService) revocationEnabled() bool {
	return s.revoker != nil && s.cfg.RevokeOnLogout
}

// NormalizeEmail lowercases and trims an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
