package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/program-catalog/internal/api/handlers"
	"github.com/baharkarakas/program-catalog/internal/api/httpx"
	"github.com/baharkarakas/program-catalog/internal/auth"
	"github.com/baharkarakas/program-catalog/internal/config"
	"github.com/baharkarakas/program-catalog/internal/metrics"
	"github.com/baharkarakas/program-catalog/internal/middleware"
	"github.com/baharkarakas/program-catalog/internal/models"
)

type RouterDeps struct {
	Cfg      config.Config
	Log      *slog.Logger
	Programs handlers.ProgramService
	Users    handlers.UserService
	Auth     handlers.AuthService
	Tokens   *auth.TokenManager
	// Ping checks the store for /health. Optional.
	Ping func(ctx context.Context) error
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	errs := httpx.Errors{ExposeInternal: !d.Cfg.Prod(), Log: log}
	ph := handlers.NewProgramHandler(d.Programs, errs)
	uh := handlers.NewUserHandler(d.Users, errs)
	ah := handlers.NewAuthHandler(d.Auth, errs)

	origins := d.Cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.HTTPMetrics, middleware.Logging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", health(d.Ping))
	r.Handle("/metrics", metrics.Handler())

	// staff routes are gated only when API_REQUIRE_AUTH is on
	staff := func(r chi.Router) chi.Router { return r }
	if d.Cfg.RequireAuth && d.Tokens != nil {
		am := middleware.NewAuthMiddleware(d.Tokens)
		staff = func(r chi.Router) chi.Router {
			return r.With(am.RequireIdentity, middleware.RequireRole(models.RoleAdmin, models.RoleAdmissions))
		}
	}

	r.Get("/catalog", ph.Catalog)

	r.Route("/programs", func(r chi.Router) {
		r.Get("/", ph.List)
		staff(r).Post("/", ph.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ph.Get)
			r.Get("/embed", ph.Embed)
			staff(r).Put("/", ph.Update)
			staff(r).Delete("/", ph.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", uh.Register)
		staff(r).Get("/", uh.List)
		r.Route("/{id}", func(r chi.Router) {
			staff(r).Get("/", uh.Get)
			staff(r).Put("/", uh.Update)
			staff(r).Delete("/", uh.Delete)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", ah.Login)
		r.Post("/logout", ah.Logout)
	})

	return r
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				httpx.WriteError(w, http.StatusServiceUnavailable, "unavailable", "store unreachable", nil)
				return
			}
		}
		httpx.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
