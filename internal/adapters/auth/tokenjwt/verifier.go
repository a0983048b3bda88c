// Package tokenjwt implementa auth.AuthVerifier para tokens HS256 firmados
// por el proveedor de identidad con un secreto compartido.
package tokenjwt

import (
	"context"
	"errors"
	"strings"

	"child-wellbeing-log/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(email),
		Name:   strings.TrimSpace(name),
	}, nil
}
