package router

import (
	"context"
	"fmt"
	"net/http"

	_ "animal-shelter/docs"
	"animal-shelter/internal/adapters/storage/instrumented"
	mem "animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/dashboard"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultTitle = "Animal Shelter Dashboard"

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa ese store (Mongo/Postgres). Si no, in-memory.
	Repo animals.Repository

	Logger   logger.Logger
	Metrics  *metrics.Metrics // nil = sin /metrics ni instrumentación
	PageSize int
	Title    string
}

// NewRouter arma servicios y rutas, y carga el snapshot inicial del dashboard.
func NewRouter(ctx context.Context, opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewAnimalsRepo()
	}
	repo = instrumented.NewAnimalsRepo(repo, opts.Metrics)

	// Services por módulo
	animalsSvc := animals.NewService(repo, log)
	dashSvc := dashboard.NewService(animalsSvc, dashboard.Options{
		PageSize: opts.PageSize,
		Logger:   log,
		Metrics:  opts.Metrics,
	})
	if err := dashSvc.Load(ctx); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	dashboard.RegisterRoutes(r, dashSvc, title)

	return r, nil
}
