package jobs

import (
	"context"
	"strings"

	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/services"
	"github.com/vytor/stageboard/internal/worker"
)

// ImportOutcome is reported once per enqueued stage.
type ImportOutcome struct {
	StageID string
	Result  *models.ImportResult
	Err     error
}

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	importPool    *worker.Pool
	importService services.ImportService
	outcomes      chan<- ImportOutcome
}

// NewWorkerQueue creates a new WorkerQueue. If outcomes is non-nil every
// finished import is sent to it; the caller must keep draining it.
func NewWorkerQueue(importPool *worker.Pool, importService services.ImportService, outcomes chan<- ImportOutcome) JobQueue {
	return &WorkerQueue{
		importPool:    importPool,
		importService: importService,
		outcomes:      outcomes,
	}
}

func (q *WorkerQueue) EnqueueImport(ctx context.Context, stageID string) error {
	if strings.TrimSpace(stageID) == "" {
		return apperrors.NewValidationError("stageId", "must not be empty")
	}

	job := &worker.ImportStageJob{
		ImportService: q.importService,
		StageID:       stageID,
	}
	if q.outcomes != nil {
		job.Done = func(id string, res *models.ImportResult, err error) {
			q.outcomes <- ImportOutcome{StageID: id, Result: res, Err: err}
		}
	}
	return q.importPool.Submit(ctx, job)
}
