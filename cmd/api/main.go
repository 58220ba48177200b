package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/program-catalog/internal/api"
	"github.com/baharkarakas/program-catalog/internal/auth"
	"github.com/baharkarakas/program-catalog/internal/cache"
	"github.com/baharkarakas/program-catalog/internal/config"
	"github.com/baharkarakas/program-catalog/internal/db"
	"github.com/baharkarakas/program-catalog/internal/logger"
	"github.com/baharkarakas/program-catalog/internal/metrics"
	repo "github.com/baharkarakas/program-catalog/internal/repository"
	"github.com/baharkarakas/program-catalog/internal/repository/memory"
	"github.com/baharkarakas/program-catalog/internal/repository/postgres"
	"github.com/baharkarakas/program-catalog/internal/services"
	"github.com/baharkarakas/program-catalog/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	programCache := cache.Programs(cache.Noop{})
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			// the catalog still works from the store
			log.Warn("redis unavailable, catalog cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer rdb.Close()
			programCache = cache.NewRedisPrograms(rdb, cfg.CacheTTL)
		}
	}

	verifier, err := auth.NewVerifier(cfg.CredentialScheme)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	metrics.Init()
	wp := worker.NewPool(cfg.Workers, 1024)
	defer wp.Stop()

	auditor := services.NewAuditor(repos.AuditLogs, wp, log)
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Log:      log,
		Programs: services.NewProgramService(repos.Programs, programCache, auditor, log),
		Users:    services.NewUserService(repos.Users, verifier, auditor, log),
		Auth:     services.NewAuthService(repos.Users, verifier, tokens, log),
		Tokens:   tokens,
		Ping:     repos.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.Store,
			"require_auth", cfg.RequireAuth, "credential_scheme", cfg.CredentialScheme)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the repositories for cfg.Store and a close func.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Repositories, func(), error) {
	if cfg.Store == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repo.Repositories{}, nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repo.Repositories{}, nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.EmailUniqueIndex {
		if err := db.EnsureEmailIndex(ctx, pool); err != nil {
			pool.Close()
			return repo.Repositories{}, nil, fmt.Errorf("email index: %w", err)
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
