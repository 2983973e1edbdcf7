package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/repository"
)

type scoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db *sql.DB) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) UpsertBatch(ctx context.Context, stageID string, scores []models.Score) error {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("batch upserting %d scores for stage %s", len(scores), stageID)

	if len(scores) == 0 {
		return nil
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO scores (stage_id, score_id, display_name, hit_factor, rank, time_in_seconds)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(stage_id, score_id) DO UPDATE SET
    display_name = excluded.display_name,
    hit_factor = excluded.hit_factor,
    rank = excluded.rank,
    time_in_seconds = excluded.time_in_seconds
`)
		if err != nil {
			log.Error("failed to prepare batch upsert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, sc := range scores {
			if _, err := stmt.ExecContext(ctx, stageID, sc.ID, sc.DisplayName, sc.HitFactor, sc.Rank, sc.TimeInSeconds); err != nil {
				log.Error("failed to upsert score score_id=%s: %v", sc.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *scoreRepository) ListByStage(ctx context.Context, stageID string) ([]models.Score, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("listing scores for stage %s", stageID)

	query, args, err := sqlBuilder.
		Select("score_id", "stage_id", "display_name", "hit_factor", "rank", "time_in_seconds").
		From("scores").
		Where(squirrel.Eq{"stage_id": stageID}).
		OrderBy("hit_factor DESC", "rank ASC", "score_id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.Score, 0)
	for rows.Next() {
		var sc models.Score
		if err := rows.Scan(&sc.ID, &sc.StageID, &sc.DisplayName, &sc.HitFactor, &sc.Rank, &sc.TimeInSeconds); err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		scores = append(scores, sc)
	}

	log.Debug("found %d scores for stage %s", len(scores), stageID)
	return scores, rows.Err()
}

func (r *scoreRepository) CountByStage(ctx context.Context, stageID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")

	query, args, err := sqlBuilder.
		Select("COUNT(*)").
		From("scores").
		Where(squirrel.Eq{"stage_id": stageID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Error("failed to count scores: %v", err)
		return 0, err
	}
	return n, nil
}
