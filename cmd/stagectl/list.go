package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/stageboard/internal/services"
)

func cmdList() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "list imported stages, most recent first",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listStages(cmd.Context(), cmd.OutOrStdout(), appFrom(cmd.Context()).LeaderboardService)
		},
	}
}

func listStages(ctx context.Context, w io.Writer, svc services.LeaderboardService) error {
	stages, err := svc.ListStages(ctx)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		fmt.Fprintln(w, "no stages imported")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE ID\tNAME\tIMPORTED")
	for _, s := range stages {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.ImportedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}
