package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/emilythestrangee/hackernews-client/internal/config"
	"github.com/emilythestrangee/hackernews-client/internal/devbackend"
	"github.com/emilythestrangee/hackernews-client/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("⚠️ JWT_SECRET not set, tokens will not survive a restart")
	}

	svc, err := devbackend.Open(cfg.DSN(), log)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer svc.Close()

	httpServer := &http.Server{
		Addr:         "0.0.0.0:" + cfg.DevBackendPort,
		Handler:      devbackend.NewRouter(svc, []byte(secret), log),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("🚀 Dev backend starting on port %s", cfg.DevBackendPort)
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
}
