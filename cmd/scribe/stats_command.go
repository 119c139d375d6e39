package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show transcript index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			idx, err := ctx.openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			stats, err := idx.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stats.TotalTranscripts == 0 {
				fmt.Fprintln(out, "No transcripts in the index yet.")
				fmt.Fprintf(out, "\nData directory: %s\n", cfg.Paths.DataDir)
				return nil
			}

			fmt.Fprintln(out, "Transcript Index Statistics")
			fmt.Fprintln(out, "===========================")
			fmt.Fprintf(out, "Total transcripts: %d\n", stats.TotalTranscripts)
			fmt.Fprintf(out, "Unique channels:   %d\n", stats.UniqueChannels)
			fmt.Fprintf(out, "Unique platforms:  %d\n", stats.UniquePlatforms)
			fmt.Fprintf(out, "Total duration:    %s\n", formatDuration(stats.TotalDuration))
			fmt.Fprintf(out, "Total words:       %d\n", stats.TotalWords)
			fmt.Fprintf(out, "\nData directory: %s\n", cfg.Paths.DataDir)
			return nil
		},
	}
}
