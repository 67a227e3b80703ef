package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"comprobantes/internal/backend"
	"comprobantes/internal/config"
	apphttp "comprobantes/internal/http"
	applog "comprobantes/internal/log"
	"comprobantes/internal/session"
)

func main() {
	// .env is optional; in production everything comes from the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := backend.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("Backend initialization failed", "error", err,
			"record_backend", cfg.RecordBackend, "blob_backend", cfg.BlobBackend)
		os.Exit(1)
	}
	defer func() {
		if err := stores.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	}()

	sessions := session.NewManager(cfg.LoginUser, cfg.LoginPassword, cfg.SessionSecret)

	srv := apphttp.NewServer(":"+cfg.Port, sessions, stores.Records, stores.Blobs, stores.UploadsDir, cfg.MaxUploadBytes)
	srv.ReadTimeout = 15 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting comprobantes server",
			"port", cfg.Port,
			"record_backend", cfg.RecordBackend,
			"blob_backend", cfg.BlobBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
