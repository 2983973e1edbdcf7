package services

import (
	"context"
	"strings"

	"github.com/vytor/stageboard/internal/cache"
	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/metrics"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/repository"
)

// LeaderboardService reads imported leaderboards
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, stageID string) (*models.Leaderboard, error)
	ListStages(ctx context.Context) ([]models.Stage, error)
}

type leaderboardService struct {
	stageRepo repository.StageRepository
	scoreRepo repository.ScoreRepository
	cache     cache.LeaderboardCache
	metrics   *metrics.Manager
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(
	stageRepo repository.StageRepository,
	scoreRepo repository.ScoreRepository,
	lbCache cache.LeaderboardCache,
	m *metrics.Manager,
) LeaderboardService {
	if lbCache == nil {
		lbCache = cache.Noop{}
	}
	return &leaderboardService{
		stageRepo: stageRepo,
		scoreRepo: scoreRepo,
		cache:     lbCache,
		metrics:   m,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, stageID string) (*models.Leaderboard, error) {
	stageID = strings.TrimSpace(stageID)
	if stageID == "" {
		return nil, apperrors.NewValidationError("stageId", "cannot be empty")
	}

	log := logger.FromContext(ctx).WithField("stage_id", stageID)
	log.Debug("getting leaderboard")

	cached, cacheErr := s.cache.Get(ctx, stageID)
	if cacheErr != nil {
		log.Warn("leaderboard cache unavailable, reading datastore: %v", cacheErr)
	}

	// The stage row is read even on a hit: a cached copy is only served
	// while its revision matches the stored one.
	stage, err := s.stageRepo.Get(ctx, stageID)
	if err != nil {
		log.Error("failed to get stage: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	if stage == nil {
		if cached != nil {
			s.metrics.RecordCacheLookup(metrics.CacheStale)
		}
		return nil, apperrors.NewNotFoundError("stage", stageID)
	}

	switch {
	case cacheErr != nil:
		s.metrics.RecordCacheLookup(metrics.CacheError)
	case cached == nil:
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
	case cached.Stage.Revision == stage.Revision:
		s.metrics.RecordCacheLookup(metrics.CacheHit)
		return cached, nil
	default:
		s.metrics.RecordCacheLookup(metrics.CacheStale)
		log.Debug("cached leaderboard is stale: cached_revision=%d stored_revision=%d", cached.Stage.Revision, stage.Revision)
	}

	scores, err := s.scoreRepo.ListByStage(ctx, stageID)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	if scores == nil {
		scores = []models.Score{}
	}

	lb := &models.Leaderboard{Stage: *stage, Scores: scores}
	if err := s.cache.Set(ctx, lb); err != nil {
		log.Warn("failed to cache leaderboard: %v", err)
	}

	log.Debug("leaderboard loaded with %d scores", len(scores))
	return lb, nil
}

func (s *leaderboardService) ListStages(ctx context.Context) ([]models.Stage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing stages")

	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		log.Error("failed to list stages: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return stages, nil
}
