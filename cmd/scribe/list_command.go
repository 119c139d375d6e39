package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/storage"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var platform, channel, handle string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transcripts stored on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := ctx.fileStore()
			if err != nil {
				return err
			}
			infos, err := files.List(storage.ListFilter{
				Platform: platform,
				Channel:  channel,
				Handle:   handle,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No transcripts found.")
				return nil
			}

			fmt.Fprintf(out, "Found %s:\n\n", pluralize(len(infos), "transcript"))
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				duration := ""
				if info.Duration != nil {
					duration = formatDuration(*info.Duration)
				}
				rows = append(rows, []string{
					info.Platform,
					info.Channel,
					info.Title,
					duration,
					info.Path,
				})
			}
			writeTable(out, []tableColumn{
				{Header: "Platform"},
				{Header: "Channel"},
				{Header: "Title"},
				{Header: "Duration", AlignRight: true},
				{Header: "Path"},
			}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "", "Filter by platform (youtube, vimeo, ...)")
	cmd.Flags().StringVarP(&channel, "channel", "C", "", "Filter by channel display name")
	cmd.Flags().StringVarP(&handle, "handle", "H", "", "Filter by channel handle (e.g. @SomeChannel)")
	return cmd
}
