// README: Entry point; loads config, wires services, starts the HTTP server and the session sweeper.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tourplan/internal/ai"
	"tourplan/internal/config"
	httptransport "tourplan/internal/http"
	"tourplan/internal/infra"
	"tourplan/internal/maps"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/memory"
	"tourplan/internal/modules/optimization"
	"tourplan/internal/modules/preference"
	"tourplan/internal/modules/weather"
	"tourplan/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	model, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		return err
	}
	defer model.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	prefStore, err := infra.NewPreferenceStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	memorySvc := memory.NewService(prefStore)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := memorySvc.Close(closeCtx); err != nil {
			slog.Error("close preference store", "error", err)
		}
	}()

	sessionStore, err := infra.NewSessionStore(cfg.Session, redisClient)
	if err != nil {
		return err
	}
	sessions := preference.NewSessions(preference.NewCollector(model), sessionStore, cfg.Session.TTL)
	sweeper, err := preference.NewSweeper(sessions, cfg.Session.SweepSchedule)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	var weatherCache weather.Cache = weather.NewLocalCache(cfg.Weather.CacheTTL)
	if redisClient != nil {
		weatherCache = weather.NewRedisCache(redisClient, cfg.Weather.CacheTTL)
	}
	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, weatherCache)

	var places service.AttractionFinder
	if cfg.Maps.APIKey != "" {
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return err
		}
		places = placesSvc
	}

	planner := service.NewTripPlanner(
		sessions,
		memorySvc,
		weatherClient,
		places,
		itinerary.NewBuilder(model),
		optimization.Identity{},
	)

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:        planner,
		Verifier:       verifier,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening",
			"addr", cfg.HTTP.Addr,
			"ai_provider", cfg.AI.Provider,
			"store", cfg.Store.Backend,
			"sessions", cfg.Session.Backend,
			"auth", verifier != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
