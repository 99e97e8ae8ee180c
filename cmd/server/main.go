// Package main is the entrypoint for the Director API server.
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

	"github.com/ankitpatil/director/internal/api"
	"github.com/ankitpatil/director/internal/api/handler"
	mw "github.com/ankitpatil/director/internal/api/middleware"
	"github.com/ankitpatil/director/internal/api/response"
	"github.com/ankitpatil/director/internal/cache"
	"github.com/ankitpatil/director/internal/config"
	"github.com/ankitpatil/director/internal/director"
	"github.com/ankitpatil/director/internal/pipeline"
	"github.com/ankitpatil/director/internal/scriptgen"
	"github.com/ankitpatil/director/internal/stitch"
	"github.com/ankitpatil/director/internal/storage"
	"github.com/ankitpatil/director/internal/store"
	"github.com/ankitpatil/director/internal/videogen"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"store", cfg.Store.Provider,
		"script_provider", cfg.ScriptGen.Provider,
		"env", cfg.Server.Env,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Open the job store
	jobStore, cleanup, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer cleanup()
	slog.Info("job store ready", "provider", cfg.Store.Provider)

	// 3. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 4. Create the script provider
	provider, err := scriptgen.NewProvider(cfg.ScriptGen)
	if err != nil {
		return fmt.Errorf("create script provider: %w", err)
	}
	slog.Info("script provider initialized", "provider", provider.Name())

	// 5. Media storage + video backend
	media, err := storage.NewLocalStorage(cfg.Storage.Dir, "/videos")
	if err != nil {
		return fmt.Errorf("create media storage: %w", err)
	}

	videos := videogen.NewHTTPClient(cfg.VideoGen.BaseURL, cfg.VideoGen.Timeout)

	// 6. Production pipeline + stitcher + orchestrator
	producer := pipeline.NewProducer(videos, jobStore, redisCache, media, pipeline.Config{
		InterSceneDelay: cfg.Pipeline.InterSceneDelay,
		PollInterval:    cfg.Pipeline.PollInterval,
		PollTimeout:     cfg.Pipeline.PollTimeout,
		MaxRetries:      cfg.Pipeline.MaxRetries,
		RetryDelay:      cfg.Pipeline.RetryDelay,
	}, logger)

	stitcher := stitch.NewStitcher(stitch.NewFFmpegMuxer(), media, os.TempDir(), logger)

	svc := director.NewService(jobStore, redisCache, provider, producer, stitcher, cfg, logger)

	// 7. Build router with dependencies
	auth, err := mw.NewAuth(cfg.Auth.Keys)
	if err != nil {
		return fmt.Errorf("configure auth: %w", err)
	}
	rateLimit := mw.NewRateLimit(redisCache, cfg.Auth.RequestsPerMin)

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler: healthHandler(jobStore, redisCache),

		CreateMovieHandler:   handler.NewCreateMovieHandler(svc),
		ApproveScriptHandler: handler.NewApproveScriptHandler(svc),
		GetMovieHandler:      handler.NewGetMovieHandler(svc),
		ListMoviesHandler:    handler.NewListMoviesHandler(svc),
	}

	router := api.NewRouter(deps)

	// 8. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openStore builds the configured job store backend and returns it with
// a cleanup func.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Provider {
	case "postgres":
		pool, err := store.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := store.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	case "file":
		fs, err := store.NewFileStore(cfg.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store provider %q", cfg.Provider)
	}
}

// healthHandler checks job store and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"store": "ok",
			"cache": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["store"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		if checks["store"] != "ok" || checks["cache"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
