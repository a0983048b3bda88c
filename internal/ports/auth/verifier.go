package auth

import "context"

// AuthVerifier valida un token de sesión y devuelve los claims del principal.
// Las implementaciones viven en internal/adapters/auth.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
