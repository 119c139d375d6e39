package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <video-id>",
		Short: "Remove a transcript from the index (files on disk are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLock(func() error {
				videoID := args[0]
				idx, err := ctx.openIndex()
				if err != nil {
					return err
				}
				defer idx.Close()

				removed, err := idx.Delete(cmd.Context(), videoID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !removed {
					fmt.Fprintf(out, "No index entry for %s.\n", videoID)
					return nil
				}
				fmt.Fprintf(out, "Removed %s from the index. Run reindex to restore it from disk.\n", videoID)
				return nil
			})
		},
	}
}
