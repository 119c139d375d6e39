package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			idx, err := ctx.openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			results, err := idx.Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No results found for: %s\n", query)
				return nil
			}

			fmt.Fprintf(out, "Found %s for %q:\n\n", pluralize(len(results), "result"), query)
			for _, res := range results {
				rec := res.Record
				var duration int64
				if rec.Duration != nil {
					duration = *rec.Duration
				}
				fmt.Fprintf(out, "- %s: %s (%s)\n", rec.Channel, rec.Title, formatDuration(duration))
				fmt.Fprintf(out, "  Path: %s\n", rec.Path)
				if res.Snippet != "" {
					fmt.Fprintf(out, "  Match: %s\n", res.Snippet)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	return cmd
}
