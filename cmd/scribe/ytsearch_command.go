package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newYtSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "yt-search <query>",
		Short: "Search YouTube for videos to transcribe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dl, err := ctx.downloader()
			if err != nil {
				return err
			}

			logger.Info("searching remote videos", "query", args[0])
			results, err := dl.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No results found for: %s\n", args[0])
				return nil
			}

			fmt.Fprintf(out, "Found %s for %q:\n\n", pluralize(len(results), "result"), args[0])
			for i, video := range results {
				printVideoEntry(cmd, i+1, video)
			}
			fmt.Fprintln(out, "To transcribe a video, run:")
			fmt.Fprintln(out, "  scribe transcribe <url>")
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	return cmd
}
