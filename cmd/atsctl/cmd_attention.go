package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"young-ats/internal/domain"
	"young-ats/internal/scheduler"
)

func newAttentionCmd() *cobra.Command {
	var publish bool

	cmd := &cobra.Command{
		Use:   "attention",
		Short: "List candidates that need attention",
		RunE: func(cmd *cobra.Command, args []string) error {
			if publish {
				n := scheduler.New(current.ucs.Candidate, current.stores.Events, "@every 1h").RunOnce(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Published %d attention events\n", n)
				return nil
			}

			flagged, err := current.ucs.Candidate.FindNeedingAttention(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			printAttention(cmd.OutOrStdout(), flagged)
			return nil
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "publish one event per flagged candidate")
	return cmd
}

func printAttention(w io.Writer, flagged []domain.Candidate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTAGE\tCREATED")
	for _, c := range flagged {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.LegacyID, c.FullName, c.PipelineStage, c.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d candidate(s) need attention\n", len(flagged))
}
