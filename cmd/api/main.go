package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"child-wellbeing-log/internal/adapters/auth/sessionapi"
	"child-wellbeing-log/internal/adapters/auth/tokenjwt"
	pg "child-wellbeing-log/internal/adapters/storage/postgres"
	"child-wellbeing-log/internal/platform/config"
	"child-wellbeing-log/internal/platform/logger"
	"child-wellbeing-log/internal/ports/auth"
	"child-wellbeing-log/internal/router"

	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("loading config")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		App:    "child-wellbeing-log",
	})

	opts := router.Options{
		AuthVerifier: buildVerifier(cfg, log),
		Logger:       log,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to postgres")
		}
		defer db.Close()

		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("ensuring schema")
		}
		opts.DB = db
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory storage")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}

// buildVerifier elige el verifier según la config: JWT local si hay secret,
// proveedor externo si hay base URL, y nil (header X-Debug-User-ID) en dev.
func buildVerifier(cfg config.Config, log zerolog.Logger) auth.AuthVerifier {
	if cfg.Auth.JWTSecret != "" {
		return tokenjwt.NewVerifier(cfg.Auth.JWTSecret)
	}
	if cfg.Auth.ProviderBaseURL != "" {
		v, err := sessionapi.NewVerifier(sessionapi.Config{
			BaseURL: cfg.Auth.ProviderBaseURL,
			APIKey:  cfg.Auth.ProviderAPIKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("configuring session verifier")
		}
		return v
	}

	log.Warn().Msg("no auth verifier configured, running in dev mode")
	return nil
}
