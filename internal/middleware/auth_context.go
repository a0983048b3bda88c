package middleware

import (
	"context"
	"net/http"
	"strings"

	"child-wellbeing-log/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext anota el request con el principal autenticado, si lo hay.
// Sin claims el request sigue igual; cada handler decide si exige auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolvePrincipal(r, verifier); ok {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolvePrincipal saca el principal del request según el modo:
//   - con verifier: Bearer token validado por Verify(); un token inválido no
//     corta aquí, simplemente no deja claims y el handler responde 401.
//   - sin verifier (modo dev): el header X-Debug-User-ID vale como identidad.
func resolvePrincipal(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(strings.TrimSpace(scheme), "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
