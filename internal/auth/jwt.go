// Package auth issues and validates the JWT access tokens used by the
// HTTP API, and hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const clockSkew = 2 * time.Minute

// Claims are the validated contents of an access token.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and validates HMAC-SHA256 access tokens.
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
	nowFunc    func() time.Time
}

// TokenServiceOption configures the TokenService.
type TokenServiceOption func(*TokenService)

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(f func() time.Time) TokenServiceOption {
	return func(s *TokenService) {
		s.nowFunc = f
	}
}

// NewTokenService creates a TokenService. The secret must be at least
// 32 characters.
func NewTokenService(secret string, lifetime time.Duration, opts ...TokenServiceOption) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 32 characters")
	}

	s := &TokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate signs a new access token for the given user.
func (s *TokenService) Generate(userID string) (string, error) {
	now := s.nowFunc()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	now := s.nowFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
