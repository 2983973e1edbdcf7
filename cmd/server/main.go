package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/stageboard/internal/app"
	"github.com/vytor/stageboard/internal/config"
	"github.com/vytor/stageboard/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log := app.NewLogger(cfg)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Stageboard Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("log_format=%s", cfg.LogFormat)
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("http_timeout=%v", cfg.HTTPTimeout)
	log.Debug("batch_size=%d", cfg.BatchSize)
	log.Debug("cors_origins=%s", cfg.CORSOrigins)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("cache_ttl=%v", cfg.CacheTTL)

	a, err := app.New(cfg)
	if err != nil {
		log.Error("failed to initialize: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database and cache connections")
		if err := a.Close(); err != nil {
			log.Warn("close: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.Server().Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout*2 + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-errCh:
		log.Error("HTTP server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Stageboard Server Stopped")
	log.Info("===========================================")
}
