package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/media"
)

func newChannelCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "channel <channel>",
		Short: "List the latest videos from a channel",
		Long:  "List the latest uploads of a channel given a URL, an @handle, or a channel ID.",
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

			logger.Info("fetching channel videos", "channel", args[0])
			videos, err := dl.ChannelVideos(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(videos) == 0 {
				fmt.Fprintf(out, "No videos found for channel: %s\n", args[0])
				return nil
			}

			fmt.Fprintf(out, "Found %s:\n\n", pluralize(len(videos), "video"))
			for i, video := range videos {
				printVideoEntry(cmd, i+1, video)
			}
			fmt.Fprintln(out, "To transcribe a video, run:")
			fmt.Fprintln(out, "  scribe transcribe <url>")
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of videos to show")
	return cmd
}

func printVideoEntry(cmd *cobra.Command, index int, video media.PlaylistEntry) {
	out := cmd.OutOrStdout()

	title := video.Title
	if video.Channel != nil && *video.Channel != "" {
		title += " - " + *video.Channel
	}
	if video.Duration != nil {
		title += fmt.Sprintf(" (%s)", formatClock(*video.Duration))
	}
	fmt.Fprintf(out, "%d. %s\n", index, title)

	var details []string
	if video.ViewCount != nil {
		details = append(details, formatViewCount(*video.ViewCount))
	}
	if video.UploadDate != nil {
		details = append(details, formatUploadDate(*video.UploadDate))
	}
	if line := joinNonEmpty(details, " | "); line != "" {
		fmt.Fprintf(out, "   %s\n", line)
	}

	fmt.Fprintf(out, "   %s\n\n", video.URL)
}
