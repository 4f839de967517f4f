// Package jwt provides access-token generation and verification.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Package-level errors so callers can distinguish failure kinds with
// errors.Is. Expired, malformed and invalid-signature tokens each map to a
// different error.
var (
	ErrInvalidToken   = errors.New("jwt: invalid token")
	ErrExpiredToken   = errors.New("jwt: token has expired")
	ErrMalformedToken = errors.New("jwt: token is malformed")
	ErrTokenNotFound  = errors.New("jwt: token not found")
)

const Issuer = "profile-service"

// Claims represents the decoded token payload.
type Claims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService creates and verifies access tokens.
// Create one instance and reuse it throughout the application.
type TokenService struct {
	accessSecret      []byte
	accessTokenExpiry time.Duration
	parser            *jwt.Parser
}

// NewTokenService creates a new TokenService.
//
// Configuration comes from environment variables:
//   - JWT_ACCESS_SECRET: secret key for access tokens (required)
func NewTokenService() *TokenService {
	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	if accessSecret == "" {
		accessSecret = "default-access-secret-change-in-production!"
	}

	parser := jwt.NewParser(
		// Only accept HS256 - prevents algorithm confusion attacks
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(Issuer),
	)

	return &TokenService{
		accessSecret:      []byte(accessSecret),
		accessTokenExpiry: 15 * time.Minute,
		parser:            parser,
	}
}

// GenerateAccessToken creates a signed access token for a user.
func (s *TokenService) GenerateAccessToken(ctx context.Context, userID int64, isAdmin bool) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExpiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("creating access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies an access token and returns its claims.
func (s *TokenService) ParseAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenNotFound
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.accessSecret, nil
	})

	if err != nil {
		return nil, convertError(err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// convertError transforms jwt library errors into our package errors.
func convertError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
