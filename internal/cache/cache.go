// Package cache holds read-through caches for assembled leaderboards.
package cache

import (
	"context"

	"github.com/vytor/stageboard/internal/models"
)

// LeaderboardCache stores assembled leaderboards by stage id.
// Get returns nil, nil on a miss.
type LeaderboardCache interface {
	Get(ctx context.Context, stageID string) (*models.Leaderboard, error)
	Set(ctx context.Context, lb *models.Leaderboard) error
	Invalidate(ctx context.Context, stageID string) error
}

// Noop never stores anything. Used when no cache is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*models.Leaderboard, error) { return nil, nil }
func (Noop) Set(context.Context, *models.Leaderboard) error           { return nil }
func (Noop) Invalidate(context.Context, string) error                  { return nil }

var _ LeaderboardCache = Noop{}
