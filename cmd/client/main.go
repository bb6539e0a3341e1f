package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/emilythestrangee/hackernews-client/internal/apiclient"
	"github.com/emilythestrangee/hackernews-client/internal/config"
	"github.com/emilythestrangee/hackernews-client/internal/logger"
	"github.com/emilythestrangee/hackernews-client/internal/server"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api := apiclient.New(cfg.BackendURL, cfg.RequestTimeout, log.WithField("component", "apiclient"), apiclient.NewMetrics(registry))
	srv := server.NewServer(cfg, api, session.New(), registry, log)
	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("🚀 Client starting on port %s (backend %s)", cfg.Port, cfg.BackendURL)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("⚠️ Forced shutdown")
	}
	srv.Close()
}
