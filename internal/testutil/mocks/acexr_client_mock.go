package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/stageboard/internal/acexr"
)

// MockAcexrClient is a mock implementation of acexr.ClientInterface
type MockAcexrClient struct {
	mock.Mock
}

func (m *MockAcexrClient) FetchLeaderboard(ctx context.Context, stageID string) (*acexr.LeaderboardRecord, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acexr.LeaderboardRecord), args.Error(1)
}

func (m *MockAcexrClient) FetchScores(ctx context.Context, ids []string) ([]acexr.ScoreRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]acexr.ScoreRecord), args.Error(1)
}
