package repository

import (
	"context"

	"github.com/vytor/stageboard/internal/models"
)

// StageRepository handles stage (leaderboard header) data access
type StageRepository interface {
	// Get returns nil, nil when the stage has never been imported.
	Get(ctx context.Context, stageID string) (*models.Stage, error)
	// Upsert writes every stage field, replacing any previous import.
	// Each write advances the stage revision.
	Upsert(ctx context.Context, stage models.Stage) error
	// MarkImported advances the revision and import time once an import
	// has finished writing scores.
	MarkImported(ctx context.Context, stageID string) error
	List(ctx context.Context) ([]models.Stage, error)
}

// ScoreRepository handles score data access
type ScoreRepository interface {
	// UpsertBatch writes scores in one transaction keyed by (stage id, score id).
	UpsertBatch(ctx context.Context, stageID string, scores []models.Score) error
	// ListByStage returns every score of the stage, highest hit factor first.
	ListByStage(ctx context.Context, stageID string) ([]models.Score, error)
	CountByStage(ctx context.Context, stageID string) (int, error)
}
