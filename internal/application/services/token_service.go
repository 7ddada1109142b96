package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTTokenService signs and verifies HS256 identity tokens
type JWTTokenService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string
	now       func() time.Time
}

// NewTokenService creates a token service from the JWT configuration
func NewTokenService(cfg config.JWTConfig) *JWTTokenService {
	return &JWTTokenService{
		secret:    []byte(cfg.Secret),
		expiresIn: cfg.ExpiresIn,
		issuer:    cfg.Issuer,
		now:       time.Now,
	}
}

var _ ports.TokenService = (*JWTTokenService)(nil)

// Issue signs a token carrying userID
func (s *JWTTokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.expiresIn > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.expiresIn))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify returns the user id carried by a valid token
func (s *JWTTokenService) Verify(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Parse validates the token and returns its claims.
// Any failure is reported as entities.ErrInvalidToken wrapping the cause.
func (s *JWTTokenService) Parse(tokenString string) (*ports.TokenClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", entities.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user claim", entities.ErrInvalidToken)
	}

	out := &ports.TokenClaims{
		UserID:  claims.UserID,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		out.ExpiresAt = &exp
	}

	return out, nil
}
