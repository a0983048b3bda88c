// Package config carga la configuración de la aplicación desde env vars.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogPretty activa salida de consola legible (solo para dev).
	LogPretty bool `env:"LOG_PRETTY, default=false"`

	// DSN de Postgres. Vacío => repos in-memory (modo dev/handoff).
	DBDSN string `env:"DB_DSN"`

	Auth AuthConfig
}

type AuthConfig struct {
	// JWTSecret habilita el verifier HS256 local.
	JWTSecret string `env:"JWT_SECRET"`

	// BaseURL/APIKey del proveedor de identidad externo; se usan cuando no
	// hay JWTSecret. Sin ninguno de los dos, queda el modo dev
	// (X-Debug-User-ID).
	ProviderBaseURL string `env:"AUTH_PROVIDER_URL"`
	ProviderAPIKey  string `env:"AUTH_PROVIDER_API_KEY"`
}

// Load lee la configuración del entorno.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
