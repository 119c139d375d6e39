package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/reindex"
)

func newReindexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from transcripts on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLock(func() error {
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				files, err := ctx.fileStore()
				if err != nil {
					return err
				}
				idx, err := ctx.openIndex()
				if err != nil {
					return err
				}
				defer idx.Close()

				summary, err := reindex.New(idx, files, logger).Run(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Reindexed %s.\n", pluralize(summary.Indexed, "transcript"))
				if summary.Skipped > 0 {
					fmt.Fprintf(out, "Skipped %d directories with errors; see the log for details.\n",
						summary.Skipped)
				}
				return nil
			})
		},
	}
}
