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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/config"
	"github.com/Amke0501/Private-Notes-App/internal/handlers"
	"github.com/Amke0501/Private-Notes-App/internal/metrics"
	"github.com/Amke0501/Private-Notes-App/internal/middleware"
	"github.com/Amke0501/Private-Notes-App/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var db *store.SQLStore
	switch cfg.DBDriver {
	case "mysql":
		db, err = store.OpenMySQL(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
	default:
		db, err = store.OpenSQLite(cfg.DBPath)
	}
	if err != nil {
		return err
	}
	defer db.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	limiter := middleware.NewIPRateLimiter(cfg.AuthRatePerMin, cfg.AuthRateBurst)
	defer limiter.Stop()

	router := handlers.NewRouter(handlers.RouterDeps{
		Users:         db,
		Notes:         db,
		Tokens:        tokens,
		Metrics:       collector,
		Logger:        logger,
		AllowedOrigin: cfg.FrontendURL,
		AuthLimiter:   limiter,
		Gatherer:      registry,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
