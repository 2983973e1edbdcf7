package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/stageboard/internal/models"
)

// MockLeaderboardCache is a mock implementation of cache.LeaderboardCache
type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, stageID string) (*models.Leaderboard, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, lb *models.Leaderboard) error {
	args := m.Called(ctx, lb)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context, stageID string) error {
	args := m.Called(ctx, stageID)
	return args.Error(0)
}
