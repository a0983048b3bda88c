package tokenjwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tkn.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestVerifier_ValidToken(t *testing.T) {
	v := NewVerifier("secret-1")

	token := signToken(t, "secret-1", jwt.MapClaims{
		"sub":   "user-1",
		"email": "mor@example.com",
		"name":  "Mor Hansen",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "mor@example.com" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestVerifier_WrongSecret(t *testing.T) {
	v := NewVerifier("secret-1")

	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_ExpiredToken(t *testing.T) {
	v := NewVerifier("secret-1")

	token := signToken(t, "secret-1", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifier_MissingSubject(t *testing.T) {
	v := NewVerifier("secret-1")

	token := signToken(t, "secret-1", jwt.MapClaims{"email": "x@example.com"})
	if _, err := v.Verify(context.Background(), token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken without sub, got %v", err)
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	v := NewVerifier("   ")

	if _, err := v.Verify(context.Background(), "whatever"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
