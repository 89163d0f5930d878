package router

import (
	"context"
	"database/sql"
	"net/http"

	mem "pet-tracker/internal/adapters/storage/memory"
	pg "pet-tracker/internal/adapters/storage/postgres"
	lite "pet-tracker/internal/adapters/storage/sqlite"
	"pet-tracker/internal/domain/pets"
	"pet-tracker/internal/middleware"
	"pet-tracker/internal/platform/config"
	"pet-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Logger logger.Logger // si es nil se arma desde env
	Config config.Config

	// Opcional: base postgres ya abierta (tests). Si es nil se resuelve
	// por Config: DB_DSN -> postgres, SQLITE_PATH -> sqlite, sino memoria.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	repo := resolveRepo(opts, log)

	mapper := pets.NewMapper(pets.DefaultConfig())
	svc := pets.NewService(repo, mapper, log)

	pets.RegisterRoutes(r, svc, mapper)

	return r
}

// resolveRepo elige el backend de storage. Si un backend externo no levanta
// se cae a memoria, igual que hacía el modo dev original.
func resolveRepo(opts Options, log logger.Logger) pets.Repository {
	ctx := context.Background()

	if opts.DB != nil {
		if err := pg.EnsureSchema(ctx, opts.DB); err != nil {
			log.Warn("postgres schema init failed", map[string]any{"err": err.Error()})
		}
		return pg.NewPetsRepo(opts.DB)
	}

	if dsn := opts.Config.PostgresDSN; dsn != "" {
		repo, err := openPostgres(ctx, dsn)
		if err == nil {
			return repo
		}
		log.Warn("postgres unavailable, falling back to memory", map[string]any{"err": err.Error()})
	}

	if path := opts.Config.SQLitePath; path != "" {
		repo, err := openSQLite(ctx, path)
		if err == nil {
			return repo
		}
		log.Warn("sqlite unavailable, falling back to memory", map[string]any{"err": err.Error()})
	}

	return mem.NewPetsRepo()
}

func openPostgres(ctx context.Context, dsn string) (pets.Repository, error) {
	db, err := pg.Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := pg.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pg.NewPetsRepo(db), nil
}

func openSQLite(ctx context.Context, path string) (pets.Repository, error) {
	db, err := lite.Open(path)
	if err != nil {
		return nil, err
	}
	if err := lite.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return lite.NewPetsRepo(db), nil
}
