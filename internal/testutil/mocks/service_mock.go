package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/stageboard/internal/models"
)

// MockImportService is a mock implementation of services.ImportService
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportStage(ctx context.Context, stageID string) (*models.ImportResult, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportResult), args.Error(1)
}

// MockLeaderboardService is a mock implementation of services.LeaderboardService
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, stageID string) (*models.Leaderboard, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardService) ListStages(ctx context.Context) ([]models.Stage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stage), args.Error(1)
}
