package jobs

import "context"

// JobQueue provides an abstraction for enqueueing background stage imports
type JobQueue interface {
	EnqueueImport(ctx context.Context, stageID string) error
}
