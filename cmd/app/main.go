package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitclub/internal/app"
	"fitclub/internal/config"
	"fitclub/internal/logger"
	"fitclub/internal/server"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		logger.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	logger.Info("Starting fitness club management", "backend", cfg.StorageBackend, "data_dir", cfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	var srv *server.Server
	if cfg.MetricsAddr != "" {
		srv = server.New(cfg.MetricsAddr, application)
		go func() {
			logger.Infof("Ops server listening on %s", cfg.MetricsAddr)
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Ops server error: %v", err)
			}
		}()
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Application error: %v", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Error during ops server shutdown: %v", err)
		}
	}

	logger.Info("Application stopped")
}
