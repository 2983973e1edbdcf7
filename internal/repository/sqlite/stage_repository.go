package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/repository"
)

type stageRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewStageRepository creates a new StageRepository implementation
func NewStageRepository(db *sql.DB) repository.StageRepository {
	return &stageRepository{db: db, now: time.Now}
}

func (r *stageRepository) Get(ctx context.Context, stageID string) (*models.Stage, error) {
	log := logger.FromContext(ctx).WithPrefix("stage_repo")
	log.Debug("getting stage: stage_id=%s", stageID)

	query, args, err := sqlBuilder.
		Select("stage_id", "stage_name", "threshold", "imported_at", "revision").
		From("leaderboards").
		Where(squirrel.Eq{"stage_id": stageID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var (
		s         models.Stage
		threshold sql.NullFloat64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &threshold, &s.ImportedAt, &s.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("stage not found: stage_id=%s", stageID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get stage: %v", err)
		return nil, err
	}
	s.Threshold = floatPtr(threshold)
	return &s, nil
}

func (r *stageRepository) Upsert(ctx context.Context, stage models.Stage) error {
	log := logger.FromContext(ctx).WithPrefix("stage_repo")
	log.Debug("upserting stage: stage_id=%s, name=%s", stage.ID, stage.Name)

	importedAt := stage.ImportedAt
	if importedAt.IsZero() {
		importedAt = r.now().UTC()
	}

	// ON CONFLICT keeps the row (and its scores); INSERT OR REPLACE would cascade-delete them.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO leaderboards (stage_id, stage_name, threshold, imported_at, revision)
VALUES (?, ?, ?, ?, 1)
ON CONFLICT(stage_id) DO UPDATE SET
    stage_name = excluded.stage_name,
    threshold = excluded.threshold,
    imported_at = excluded.imported_at,
    revision = leaderboards.revision + 1
`, stage.ID, stage.Name, nullFloat(stage.Threshold), importedAt)
	if err != nil {
		log.Error("failed to upsert stage %s: %v", stage.ID, err)
	}
	return err
}

func (r *stageRepository) MarkImported(ctx context.Context, stageID string) error {
	log := logger.FromContext(ctx).WithPrefix("stage_repo")

	query, args, err := sqlBuilder.
		Update("leaderboards").
		Set("revision", squirrel.Expr("revision + 1")).
		Set("imported_at", r.now().UTC()).
		Where(squirrel.Eq{"stage_id": stageID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to mark stage %s imported: %v", stageID, err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mark stage %s imported: %w", stageID, sql.ErrNoRows)
	}
	log.Debug("stage marked imported: stage_id=%s", stageID)
	return nil
}

func (r *stageRepository) List(ctx context.Context) ([]models.Stage, error) {
	log := logger.FromContext(ctx).WithPrefix("stage_repo")
	log.Debug("listing stages")

	query, args, err := sqlBuilder.
		Select("stage_id", "stage_name", "threshold", "imported_at", "revision").
		From("leaderboards").
		OrderBy("imported_at DESC", "stage_id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list stages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stages []models.Stage
	for rows.Next() {
		var (
			s         models.Stage
			threshold sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &threshold, &s.ImportedAt, &s.Revision); err != nil {
			log.Error("failed to scan stage row: %v", err)
			return nil, err
		}
		s.Threshold = floatPtr(threshold)
		stages = append(stages, s)
	}

	log.Debug("found %d stages", len(stages))
	return stages, rows.Err()
}
