package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/stageboard/internal/models"
)

// MockStageRepository is a mock implementation of repository.StageRepository
type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) Get(ctx context.Context, stageID string) (*models.Stage, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stage), args.Error(1)
}

func (m *MockStageRepository) Upsert(ctx context.Context, stage models.Stage) error {
	args := m.Called(ctx, stage)
	return args.Error(0)
}

func (m *MockStageRepository) MarkImported(ctx context.Context, stageID string) error {
	args := m.Called(ctx, stageID)
	return args.Error(0)
}

func (m *MockStageRepository) List(ctx context.Context) ([]models.Stage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stage), args.Error(1)
}

// MockScoreRepository is a mock implementation of repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) UpsertBatch(ctx context.Context, stageID string, scores []models.Score) error {
	args := m.Called(ctx, stageID, scores)
	return args.Error(0)
}

func (m *MockScoreRepository) ListByStage(ctx context.Context, stageID string) ([]models.Score, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Score), args.Error(1)
}

func (m *MockScoreRepository) CountByStage(ctx context.Context, stageID string) (int, error) {
	args := m.Called(ctx, stageID)
	return args.Int(0), args.Error(1)
}
