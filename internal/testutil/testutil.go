package testutil

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/stageboard/internal/db"
	"github.com/vytor/stageboard/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is limited to one connection so every query sees the same memory database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.ApplyMigrations(context.Background(), sqlDB))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// MakeScores builds n scores for stageID with strictly decreasing hit factors.
func MakeScores(stageID string, n int) []models.Score {
	scores := make([]models.Score, n)
	for i := range scores {
		scores[i] = models.Score{
			ID:            "score" + strconv.Itoa(i+1),
			StageID:       stageID,
			DisplayName:   "Player " + strconv.Itoa(i+1),
			HitFactor:     float64(n-i) / 2,
			Rank:          i + 1,
			TimeInSeconds: float64(10 + i),
		}
	}
	return scores
}
