package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmind/internal/api"
	"mealmind/internal/auth"
	"mealmind/internal/config"
	"mealmind/internal/pantry"
	"mealmind/internal/platform/cache"
	"mealmind/internal/platform/docstore"
	"mealmind/internal/platform/gemini"
	"mealmind/internal/platform/logger"
	"mealmind/internal/platform/relay"
	"mealmind/internal/profile"
	"mealmind/internal/recipe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := docstore.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("error creating document store: %w", err)
	}
	defer store.Close()

	var (
		genCache cache.Store
		limiter  api.RateLimiter
	)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		redisStore := cache.NewRedisStore(client)
		genCache = redisStore
		if cfg.RateLimit.Enabled {
			limiter = cache.NewRateLimiter(redisStore, "generate", cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	generator, closeGenerator, err := newGenerator(ctx, cfg, genCache, log)
	if err != nil {
		return err
	}
	defer closeGenerator()

	normalizer := recipe.NewNormalizer(nil)
	handler := api.NewHandler(api.Dependencies{
		Generator:  generator,
		Recipes:    recipe.NewCatalog(store, normalizer),
		Lists:      pantry.NewStore(store),
		Profiles:   profile.NewStore(store),
		Normalizer: normalizer,
		Images: api.ImageOptions{
			Dir:     cfg.Images.Dir,
			Width:   cfg.Images.Width,
			MaxSize: cfg.Images.MaxSizeBytes,
		},
		GenerationTimeout: cfg.Generation.Timeout,
		Logger:            log,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(handler, api.RouterOptions{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Validator:    auth.NewHMACValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Limiter:      limiter,
		Database:     store,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", cfg.Generation.Provider),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.Bool("rate_limit", limiter != nil),
		)
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newGenerator builds the configured model client, wrapped in the redis
// cache when one is available. The returned func releases the client.
func newGenerator(ctx context.Context, cfg *config.Config, store cache.Store, log *zap.Logger) (api.Generator, func(), error) {
	var (
		gen     api.Generator
		closeFn = func() {}
	)

	switch cfg.Generation.Provider {
	case config.ProviderRelay:
		gen = relay.NewClient(cfg.Generation.RelayURL, cfg.Generation.Timeout)
		log.Info("using generation relay", zap.String("url", cfg.Generation.RelayURL))
	default:
		client, err := gemini.NewClient(ctx, cfg.Generation.GeminiAPIKey, cfg.Generation.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating gemini client: %w", err)
		}
		gen = client
		closeFn = func() { client.Close() }
		log.Info("using gemini",
			zap.String("model", cfg.Generation.Model),
			zap.String("api_key", config.MaskSecret(cfg.Generation.GeminiAPIKey)),
		)
	}

	if store != nil && cfg.Generation.CacheTTL > 0 {
		gen = cache.NewCachedGenerator(gen, store, cfg.Generation.CacheTTL, log)
	}
	return gen, closeFn, nil
}
