// Command httpd runs the report triage HTTP service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/report-triage/internal/bootstrap"
	"github.com/jonesrussell/report-triage/internal/logger"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	lg.Info("Starting triage HTTP server",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	components, err := bootstrap.NewHTTPComponents(cfg, lg)
	if err != nil {
		lg.Error("Failed to initialize components", logger.Error(err))
		os.Exit(1)
	}
	if components.DB != nil {
		defer func() { _ = components.DB.Close() }()
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- components.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		lg.Error("Server error", logger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		lg.Info("Shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), bootstrap.HTTPShutdownTimeout())
		defer cancel()

		if err := components.Server.Shutdown(ctx); err != nil {
			lg.Error("Graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}

		lg.Info("Server stopped gracefully")
	}
}
