// Package sessionapi implementa auth.AuthVerifier contra el endpoint de
// verificación de sesiones del proveedor de identidad externo.
package sessionapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"child-wellbeing-log/internal/platform/httpclient"
	"child-wellbeing-log/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("session verifier not configured")
	ErrUnauthorized  = errors.New("session unauthorized")
	ErrUpstream      = errors.New("identity provider error")
)

type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

type Verifier struct {
	client       *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	client, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}
	return &Verifier{
		client:       client,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
	}, nil
}

func (v *Verifier) isConfigured() bool {
	return v != nil && v.client != nil && v.client.BaseURL != "" && v.apiKey != ""
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !v.isConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}

	err := v.client.DoJSON(ctx, http.MethodPost, "/v1/sessions/verify",
		map[string]string{
			v.apiKeyHeader: v.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, errors.New("session response missing user_id")
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Name:   strings.TrimSpace(out.Name),
	}, nil
}
