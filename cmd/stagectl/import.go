package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vytor/stageboard/internal/jobs"
	"github.com/vytor/stageboard/internal/services"
	"github.com/vytor/stageboard/internal/worker"
)

func cmdImport() *cobra.Command {
	var workers int
	var cmd = &cobra.Command{
		Use:          "import <stageId>...",
		Short:        "fetch one or more stages from the scoring platform and store them",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			if workers <= 0 {
				workers = a.Config.ImportWorkerCount
			}
			return importStages(cmd.Context(), cmd.OutOrStdout(), a.ImportService, args, workers, a.Config.ImportQueueSize)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent stage imports (default from config)")
	return cmd
}

// importStages runs one import job per stage id on a worker pool and
// prints a line per stage. It fails if any stage failed.
func importStages(ctx context.Context, w io.Writer, svc services.ImportService, stageIDs []string, workers, queueSize int) error {
	pool := worker.NewPool(min(workers, len(stageIDs)), queueSize)
	pool.Start(ctx)

	outcomes := make(chan jobs.ImportOutcome, len(stageIDs))
	queue := jobs.NewWorkerQueue(pool, svc, outcomes)

	var failed int
	for _, id := range stageIDs {
		if err := queue.EnqueueImport(ctx, id); err != nil {
			fmt.Fprintf(w, "%s\tFAILED\t%v\n", id, err)
			failed++
		}
	}
	pool.Stop()
	close(outcomes)

	for out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(w, "%s\tFAILED\t%v\n", out.StageID, out.Err)
			failed++
			continue
		}
		fmt.Fprintf(w, "%s\tOK\t%q: %d scores in %d batches\n",
			out.StageID, out.Result.StageName, out.Result.TotalScores, out.Result.Batches)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d stage imports failed", failed, len(stageIDs))
	}
	return nil
}
