package services

import (
	"context"
	"errors"
	"strings"

	"github.com/vytor/stageboard/internal/acexr"
	"github.com/vytor/stageboard/internal/cache"
	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/metrics"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/repository"
)

// DefaultBatchSize is the largest number of scores written in one transaction.
const DefaultBatchSize = 500

// ImportService copies one stage's leaderboard from the scoring platform into the datastore.
type ImportService interface {
	ImportStage(ctx context.Context, stageID string) (*models.ImportResult, error)
}

type importService struct {
	client    acexr.ClientInterface
	stageRepo repository.StageRepository
	scoreRepo repository.ScoreRepository
	cache     cache.LeaderboardCache
	metrics   *metrics.Manager
	batchSize int
}

// NewImportService creates a new ImportService. A nil cache disables
// invalidation; a nil metrics manager records nothing.
func NewImportService(
	client acexr.ClientInterface,
	stageRepo repository.StageRepository,
	scoreRepo repository.ScoreRepository,
	lbCache cache.LeaderboardCache,
	m *metrics.Manager,
	batchSize int,
) ImportService {
	if lbCache == nil {
		lbCache = cache.Noop{}
	}
	if batchSize <= 0 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}
	return &importService{
		client:    client,
		stageRepo: stageRepo,
		scoreRepo: scoreRepo,
		cache:     lbCache,
		metrics:   m,
		batchSize: batchSize,
	}
}

func (s *importService) ImportStage(ctx context.Context, stageID string) (result *models.ImportResult, err error) {
	stageID = strings.TrimSpace(stageID)
	if stageID == "" {
		return nil, apperrors.NewValidationError("stageId", "cannot be empty")
	}

	log := logger.FromContext(ctx).WithField("stage_id", stageID)
	ctx = logger.NewContext(ctx, log)
	log.Info("importing stage leaderboard")

	defer func() {
		if err != nil {
			s.metrics.RecordImport(metrics.ImportFailure)
			return
		}
		s.metrics.RecordImport(metrics.ImportSuccess)
	}()

	rec, err := s.client.FetchLeaderboard(ctx, stageID)
	if err != nil {
		log.Error("failed to fetch leaderboard: %v", err)
		return nil, upstreamError("failed to fetch leaderboard data", err)
	}
	if rec.ScoreIDs == nil || rec.StageName == "" {
		log.Error("leaderboard is missing required fields: has_score_list=%t, stage_name=%q", rec.ScoreIDs != nil, rec.StageName)
		return nil, apperrors.NewDataError("leaderboard data is missing required fields")
	}

	var records []acexr.ScoreRecord
	if len(rec.ScoreIDs) > 0 {
		records, err = s.client.FetchScores(ctx, rec.ScoreIDs)
		if err != nil {
			log.Error("failed to fetch scores: %v", err)
			return nil, upstreamError("failed to fetch scores data", err)
		}
	}

	scores := make([]models.Score, 0, len(records))
	for i, r := range records {
		if r.ID == "" {
			log.Error("score record %d has no id", i)
			return nil, apperrors.NewDataError("score data is missing required fields")
		}
		if r.HitFactor == nil {
			log.Warn("score %s has no hit factor, storing 0", r.ID)
		}
		scores = append(scores, r.ToScore(stageID))
	}

	stage := rec.ToStage(stageID)
	if err := s.stageRepo.Upsert(ctx, stage); err != nil {
		log.Error("failed to save stage: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	// From here on the stored leaderboard may differ from any cached copy.
	// Advancing the revision after the last batch makes any copy cached by
	// a read that overlapped this import stale.
	defer func() {
		if merr := s.stageRepo.MarkImported(ctx, stageID); merr != nil {
			log.Warn("failed to advance stage revision: %v", merr)
		}
		if cerr := s.cache.Invalidate(ctx, stageID); cerr != nil {
			log.Warn("failed to invalidate cached leaderboard: %v", cerr)
		}
	}()

	batches := 0
	for start := 0; start < len(scores); start += s.batchSize {
		end := min(start+s.batchSize, len(scores))
		if err := s.scoreRepo.UpsertBatch(ctx, stageID, scores[start:end]); err != nil {
			log.Error("failed to save score batch %d (scores %d-%d), %d earlier batches kept: %v", batches+1, start, end-1, batches, err)
			return nil, apperrors.NewInternalError(err)
		}
		batches++
		s.metrics.RecordBatch(end - start)
		log.Debug("committed score batch %d (%d scores)", batches, end-start)
	}

	log.Info("fetched and saved leaderboard %q: %d scores in %d batches", stage.Name, len(scores), batches)
	return &models.ImportResult{
		StageID:     stageID,
		StageName:   stage.Name,
		TotalScores: len(scores),
		Batches:     batches,
	}, nil
}

func upstreamError(message string, err error) *apperrors.AppError {
	if errors.Is(err, acexr.ErrMalformedResponse) {
		e := apperrors.NewDataError(message)
		e.Err = err
		return e
	}
	return apperrors.NewUpstreamError(message, err)
}
