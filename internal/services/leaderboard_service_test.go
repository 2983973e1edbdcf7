package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/metrics"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/services"
	"github.com/vytor/stageboard/internal/testutil"
	"github.com/vytor/stageboard/internal/testutil/mocks"
)

type readFixture struct {
	stages *mocks.MockStageRepository
	scores *mocks.MockScoreRepository
	cache  *mocks.MockLeaderboardCache
	svc    services.LeaderboardService
}

func newReadFixture() *readFixture {
	f := &readFixture{
		stages: new(mocks.MockStageRepository),
		scores: new(mocks.MockScoreRepository),
		cache:  new(mocks.MockLeaderboardCache),
	}
	f.svc = services.NewLeaderboardService(f.stages, f.scores, f.cache, metrics.NewManager())
	return f
}

func TestGetLeaderboard_FromDatastore(t *testing.T) {
	f := newReadFixture()
	stage := &models.Stage{ID: "testStageId", Name: "Test Stage", Threshold: testutil.Float(100)}
	scores := []models.Score{{ID: "score1", DisplayName: "Player 1", HitFactor: 5.5, Rank: 1, TimeInSeconds: 10}}

	f.cache.On("Get", mock.Anything, "testStageId").Return(nil, nil)
	f.stages.On("Get", mock.Anything, "testStageId").Return(stage, nil)
	f.scores.On("ListByStage", mock.Anything, "testStageId").Return(scores, nil)
	f.cache.On("Set", mock.Anything, &models.Leaderboard{Stage: *stage, Scores: scores}).Return(nil)

	lb, err := f.svc.GetLeaderboard(context.Background(), "testStageId")
	require.NoError(t, err)
	assert.Equal(t, "Test Stage", lb.Stage.Name)
	assert.Equal(t, scores, lb.Scores)
	f.cache.AssertExpectations(t)
}

func TestGetLeaderboard_CacheHit(t *testing.T) {
	f := newReadFixture()
	cached := &models.Leaderboard{Stage: models.Stage{ID: "s", Name: "Cached", Revision: 3}, Scores: []models.Score{}}
	f.cache.On("Get", mock.Anything, "s").Return(cached, nil)
	f.stages.On("Get", mock.Anything, "s").Return(&models.Stage{ID: "s", Name: "Cached", Revision: 3}, nil)

	lb, err := f.svc.GetLeaderboard(context.Background(), "s")
	require.NoError(t, err)
	assert.Same(t, cached, lb)
	f.scores.AssertNotCalled(t, "ListByStage", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestGetLeaderboard_StaleCacheEntryIsReplaced(t *testing.T) {
	f := newReadFixture()
	cached := &models.Leaderboard{Stage: models.Stage{ID: "s", Name: "Old", Revision: 1}, Scores: []models.Score{}}
	stored := &models.Stage{ID: "s", Name: "New", Revision: 3}
	scores := []models.Score{{ID: "score1", StageID: "s", DisplayName: "Player 1", HitFactor: 5.5, Rank: 1}}

	f.cache.On("Get", mock.Anything, "s").Return(cached, nil)
	f.stages.On("Get", mock.Anything, "s").Return(stored, nil)
	f.scores.On("ListByStage", mock.Anything, "s").Return(scores, nil)
	f.cache.On("Set", mock.Anything, &models.Leaderboard{Stage: *stored, Scores: scores}).Return(nil)

	lb, err := f.svc.GetLeaderboard(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "New", lb.Stage.Name)
	assert.Equal(t, scores, lb.Scores)
	f.cache.AssertExpectations(t)
}

func TestGetLeaderboard_CachedButStageGone(t *testing.T) {
	f := newReadFixture()
	f.cache.On("Get", mock.Anything, "s").Return(&models.Leaderboard{Stage: models.Stage{ID: "s", Revision: 2}}, nil)
	f.stages.On("Get", mock.Anything, "s").Return(nil, nil)

	_, err := f.svc.GetLeaderboard(context.Background(), "s")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestGetLeaderboard_CacheErrorFallsBack(t *testing.T) {
	f := newReadFixture()
	f.cache.On("Get", mock.Anything, "s").Return(nil, errors.New("redis down"))
	f.stages.On("Get", mock.Anything, "s").Return(&models.Stage{ID: "s", Name: "S"}, nil)
	f.scores.On("ListByStage", mock.Anything, "s").Return(nil, nil)
	f.cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	lb, err := f.svc.GetLeaderboard(context.Background(), "s")
	require.NoError(t, err)
	assert.NotNil(t, lb.Scores)
	assert.Empty(t, lb.Scores)
}

func TestGetLeaderboard_NotFound(t *testing.T) {
	f := newReadFixture()
	f.cache.On("Get", mock.Anything, "missing").Return(nil, nil)
	f.stages.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := f.svc.GetLeaderboard(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.As(err).Status)
	f.scores.AssertNotCalled(t, "ListByStage", mock.Anything, mock.Anything)
}

func TestGetLeaderboard_BlankID(t *testing.T) {
	f := newReadFixture()

	_, err := f.svc.GetLeaderboard(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.As(err).Status)
}

func TestGetLeaderboard_DatastoreErrors(t *testing.T) {
	t.Run("stage lookup", func(t *testing.T) {
		f := newReadFixture()
		f.cache.On("Get", mock.Anything, "s").Return(nil, nil)
		f.stages.On("Get", mock.Anything, "s").Return(nil, errors.New("no such table"))

		_, err := f.svc.GetLeaderboard(context.Background(), "s")
		assert.Equal(t, 500, apperrors.As(err).Status)
	})

	t.Run("score listing", func(t *testing.T) {
		f := newReadFixture()
		f.cache.On("Get", mock.Anything, "s").Return(nil, nil)
		f.stages.On("Get", mock.Anything, "s").Return(&models.Stage{ID: "s"}, nil)
		f.scores.On("ListByStage", mock.Anything, "s").Return(nil, errors.New("no such column"))

		_, err := f.svc.GetLeaderboard(context.Background(), "s")
		assert.Equal(t, 500, apperrors.As(err).Status)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})
}

func TestListStages(t *testing.T) {
	f := newReadFixture()
	f.stages.On("List", mock.Anything).Return([]models.Stage{{ID: "a"}, {ID: "b"}}, nil)

	stages, err := f.svc.ListStages(context.Background())
	require.NoError(t, err)
	assert.Len(t, stages, 2)

	f = newReadFixture()
	f.stages.On("List", mock.Anything).Return(nil, errors.New("boom"))
	_, err = f.svc.ListStages(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInternal))
}
