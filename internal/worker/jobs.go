package worker

import (
	"context"

	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/services"
)

// ImportStageJob imports one stage. Done, if set, receives the outcome;
// it may be called from any worker goroutine.
type ImportStageJob struct {
	ImportService services.ImportService
	StageID       string
	Done          func(stageID string, res *models.ImportResult, err error)
}

func (j *ImportStageJob) Name() string { return "import_stage" }

func (j *ImportStageJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("stage_id", j.StageID)
	log.Info("starting stage import")

	res, err := j.ImportService.ImportStage(logger.NewContext(ctx, log), j.StageID)
	if j.Done != nil {
		j.Done(j.StageID, res, err)
	}
	if err != nil {
		return err
	}
	log.Info("imported %d scores in %d batches", res.TotalScores, res.Batches)
	return nil
}
