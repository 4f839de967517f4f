package jwt

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

const testAccessSecret = "test-access-secret"

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_ACCESS_SECRET", testAccessSecret)

	code := m.Run()
	os.Exit(code)
}

func TestGenerateAccessToken(t *testing.T) {
	srv := NewTokenService()

	access, err := srv.GenerateAccessToken(context.Background(), 42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	if access == "" {
		t.Fatal("expected non-empty access token")
	}
}

func TestParseAccessToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := NewTokenService()
		access, err := srv.GenerateAccessToken(context.Background(), 42, true)
		if err != nil {
			t.Fatalf("GenerateAccessToken returned error: %v", err)
		}

		claims, err := srv.ParseAccessToken(context.Background(), access)
		if err != nil {
			t.Fatalf("ParseAccessToken returned error: %v", err)
		}
		if claims.UserID != 42 {
			t.Fatalf("expected user id 42, got %d", claims.UserID)
		}
		if !claims.IsAdmin {
			t.Fatal("expected is_admin=true")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		srv := NewTokenService()

		_, err := srv.ParseAccessToken(context.Background(), "")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Fatalf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		srv := NewTokenService()

		_, err := srv.ParseAccessToken(context.Background(), "not-a-jwt")
		if !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("expected ErrMalformedToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		srv := NewTokenService()
		srv.accessTokenExpiry = -time.Minute

		access, err := srv.GenerateAccessToken(context.Background(), 42, false)
		if err != nil {
			t.Fatalf("GenerateAccessToken returned error: %v", err)
		}

		_, err = srv.ParseAccessToken(context.Background(), access)
		if !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		srv := NewTokenService()
		access, err := srv.GenerateAccessToken(context.Background(), 42, false)
		if err != nil {
			t.Fatalf("GenerateAccessToken returned error: %v", err)
		}

		other := NewTokenService()
		other.accessSecret = []byte("a-different-secret")

		_, err = other.ParseAccessToken(context.Background(), access)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
		if errors.Is(err, ErrExpiredToken) || errors.Is(err, ErrMalformedToken) {
			t.Fatalf("expected a signature failure, got %v", err)
		}
	})
}
