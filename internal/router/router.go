package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "child-wellbeing-log/docs"
	mem "child-wellbeing-log/internal/adapters/storage/memory"
	pg "child-wellbeing-log/internal/adapters/storage/postgres"
	"child-wellbeing-log/internal/domain/access"
	"child-wellbeing-log/internal/domain/children"
	"child-wellbeing-log/internal/domain/logentries"
	"child-wellbeing-log/internal/domain/users"
	"child-wellbeing-log/internal/middleware"
	"child-wellbeing-log/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Logger para la línea por request; el zero value no emite nada.
	Logger zerolog.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo  users.Repository
		grantRepo access.Repository
		childRepo children.Repository
		entryRepo logentries.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		grantRepo = pg.NewGrantsRepo(db)
		childRepo = pg.NewChildrenRepo(db)
		entryRepo = pg.NewLogEntriesRepo(db)
	} else {
		store := mem.NewStore()
		userRepo = store.Users()
		grantRepo = store.Grants()
		childRepo = store.Children()
		entryRepo = store.LogEntries()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	accessSvc := access.NewService(grantRepo, userRepo)
	childrenSvc := children.NewService(childRepo, userRepo)
	entriesSvc := logentries.NewService(entryRepo, accessSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	access.RegisterRoutes(r, accessSvc)
	children.RegisterRoutes(r, childrenSvc)
	logentries.RegisterRoutes(r, entriesSvc)

	return r
}
