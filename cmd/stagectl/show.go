package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/stageboard/internal/models"
	"github.com/vytor/stageboard/internal/services"
	"github.com/vytor/stageboard/internal/view"
)

func cmdShow() *cobra.Command {
	var search string
	var page, size int
	var cmd = &cobra.Command{
		Use:          "show <stageId>",
		Short:        "print a stored leaderboard, one page at a time",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			return showStage(cmd.Context(), cmd.OutOrStdout(), a.LeaderboardService, args[0], search, page, size)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only rows whose display name contains this text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&size, "page-size", view.DefaultPageSize, "rows per page")
	return cmd
}

func showStage(ctx context.Context, w io.Writer, svc services.LeaderboardService, stageID, search string, page, size int) error {
	lb, err := svc.GetLeaderboard(ctx, stageID)
	if err != nil {
		return err
	}

	st := view.NewState(size)
	st.Load(lb.Scores)
	st.Search(search)
	st.GoTo(page)
	renderPage(w, lb.Stage, st.Current())
	return nil
}

func renderPage(w io.Writer, stage models.Stage, p view.Page) {
	threshold := "-"
	if stage.Threshold != nil {
		threshold = strconv.FormatFloat(*stage.Threshold, 'f', -1, 64)
	}
	fmt.Fprintf(w, "%s (%s)  threshold: %s\n", stage.Name, stage.ID, threshold)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tNAME\tHIT FACTOR\tRANK\tTIME (S)")
	for _, r := range p.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%d\t%.2f\n", r.Position, r.DisplayName, r.HitFactor, r.Rank, r.TimeInSeconds)
	}
	tw.Flush()

	fmt.Fprintf(w, "page %d of %d (%d matching)\n", p.Number, p.PageCount, p.TotalMatch)
}
