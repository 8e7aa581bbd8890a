// Package main runs the feature layer REST API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	app "github.com/forgestack/feature_layer/internal/app"
	"github.com/forgestack/feature_layer/internal/app/httpapi"
	"github.com/forgestack/feature_layer/internal/app/storage/postgres"
	"github.com/forgestack/feature_layer/internal/config"
	"github.com/forgestack/feature_layer/internal/middleware"
	"github.com/forgestack/feature_layer/internal/platform/migrations"
	"github.com/forgestack/feature_layer/pkg/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "Path to an optional .env file")
	addr := flag.String("addr", "", "HTTP listen address (overrides LISTEN_ADDR)")
	flag.Parse()

	_ = godotenv.Load(*envFile) // allow .env for local runs

	cfg := config.FromEnv()
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	log := logger.NewDefault("server")

	stores := app.Stores{}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Error("open database")
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrations.Apply(ctx, db); err != nil {
			cancel()
			log.WithError(err).Error("apply migrations")
			os.Exit(1)
		}
		cancel()

		store := postgres.New(db)
		stores = app.Stores{Notes: store, Tasks: store, Transcripts: store}
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set; using in-memory storage")
	}

	application, err := app.New(stores, log)
	if err != nil {
		log.WithError(err).Error("build application")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("start application")
		os.Exit(1)
	}

	auth := middleware.NewAuthMiddleware(cfg.AuthSecret, log, []string{"/healthz", "/metrics"})
	if !auth.Enabled() {
		log.Warn("AUTH_SECRET not set; API authentication disabled")
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           auth.Handler(httpapi.NewHandler(application)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("feature layer listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server")
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application stop")
	}
}
