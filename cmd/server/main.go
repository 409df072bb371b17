// Package main is the entry point for the seller catalog service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/light-bringer/sellerhub-service/internal/config"
	"github.com/light-bringer/sellerhub-service/internal/services"
	transport "github.com/light-bringer/sellerhub-service/internal/transport/http"
	"github.com/light-bringer/sellerhub-service/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()

	log.Info("starting sellerhub service",
		"environment", cfg.App.Environment,
		"spanner_database", cfg.Spanner.Database,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := services.NewServiceOptions(ctx, cfg.Spanner.Database, log)
	if err != nil {
		log.Fatal("failed to initialize service", "error", err)
	}
	defer opts.Close()

	router := transport.NewRouter(cfg.Server, log, opts.Handlers)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", "address", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server shutdown complete")
}
