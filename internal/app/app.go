// Package app builds the service graph shared by the HTTP server and the CLI.
package app

import (
	"errors"

	"github.com/vytor/stageboard/internal/acexr"
	"github.com/vytor/stageboard/internal/api"
	"github.com/vytor/stageboard/internal/cache"
	"github.com/vytor/stageboard/internal/config"
	"github.com/vytor/stageboard/internal/db"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/metrics"
	"github.com/vytor/stageboard/internal/repository/sqlite"
	"github.com/vytor/stageboard/internal/services"
)

type App struct {
	Config  config.Config
	DB      *db.DB
	Metrics *metrics.Manager
	Cache   cache.LeaderboardCache

	ImportService      services.ImportService
	LeaderboardService services.LeaderboardService

	redis *cache.RedisCache
}

// NewLogger builds a logger from the configured level and format.
func NewLogger(cfg config.Config) *logger.Logger {
	format := logger.ParseFormat(cfg.LogFormat)
	return logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(format == logger.FormatText),
	)
}

// New opens the datastore and wires repositories, cache, upstream client
// and services. The caller owns the result and must Close it.
func New(cfg config.Config) (*App, error) {
	log := logger.Default().WithPrefix("app")

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		DB:      database,
		Metrics: metrics.NewManager(),
		Cache:   cache.Noop{},
	}
	if cfg.RedisAddr != "" {
		log.Info("using redis read cache at %s (ttl %v)", cfg.RedisAddr, cfg.CacheTTL)
		a.redis = cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		a.Cache = a.redis
	} else {
		log.Debug("read cache disabled")
	}

	stageRepo := sqlite.NewStageRepository(database.DB)
	scoreRepo := sqlite.NewScoreRepository(database.DB)
	client := acexr.New(cfg.APIBaseURL, cfg.HTTPTimeout, acexr.WithObserver(a.Metrics))

	a.ImportService = services.NewImportService(client, stageRepo, scoreRepo, a.Cache, a.Metrics, cfg.BatchSize)
	a.LeaderboardService = services.NewLeaderboardService(stageRepo, scoreRepo, a.Cache, a.Metrics)
	return a, nil
}

// Server returns the HTTP API over the app's services.
func (a *App) Server() *api.Server {
	checks := map[string]api.Pinger{"database": a.DB}
	if a.redis != nil {
		checks["cache"] = a.redis
	}
	return &api.Server{
		ImportService:      a.ImportService,
		LeaderboardService: a.LeaderboardService,
		Metrics:            a.Metrics,
		Checks:             checks,
		CORSOrigins:        a.Config.Origins(),
	}
}

// Close releases the cache client and the database.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, a.DB.Close())
	return errors.Join(errs...)
}
