// @title framerip API
// @version 1.0
// @description API for resolving frame sampling plans and ripping frames from registered videos.
// @host localhost:8080
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"framerip/internal/config"
	"framerip/internal/daemon"
	_ "framerip/internal/docs"
	"framerip/internal/extract"
	"framerip/internal/logger"
)

var log = logger.Log

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	media := extract.NewFFmpeg(0)
	server := daemon.NewServer(daemon.Options{
		Config:   cfg,
		Prober:   media,
		Capturer: media,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.DaemonAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.DaemonAddr).Info("Starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
	server.Shutdown()
}
