package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/services"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <url>",
		Short: "Print the transcript path for a URL, transcribing first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			videoID, ok := extractVideoID(url)
			if !ok {
				return services.Wrap(services.ErrConfiguration, "get", "",
					"could not extract a video ID from "+url, nil)
			}

			if dir, found, err := findExistingTranscript(cmd, ctx, videoID); err != nil {
				return err
			} else if found {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger.Info("transcript not found, transcribing", "url", url)

			var dir string
			err = ctx.withLock(func() error {
				var runErr error
				dir, runErr = runTranscribe(cmd, ctx, url)
				return runErr
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func findExistingTranscript(cmd *cobra.Command, ctx *commandContext, videoID string) (string, bool, error) {
	idx, err := ctx.openIndex()
	if err != nil {
		return "", false, err
	}
	defer idx.Close()

	rec, err := idx.GetByVideoID(cmd.Context(), videoID)
	if err != nil {
		return "", false, err
	}
	if rec != nil {
		return rec.Path, true, nil
	}

	files, err := ctx.fileStore()
	if err != nil {
		return "", false, err
	}
	if dir, ok := files.FindVideoDir(videoID); ok {
		return dir, true, nil
	}
	return "", false, nil
}

// extractVideoID pulls the provider video ID out of a URL. YouTube's
// watch and short-link forms are handled explicitly; for everything else
// the last path segment stands in.
func extractVideoID(url string) (string, bool) {
	lower := strings.ToLower(url)

	if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") {
		if _, after, ok := strings.Cut(url, "v="); ok {
			id, _, _ := strings.Cut(after, "&")
			if id != "" {
				return id, true
			}
		}
		if _, after, ok := strings.Cut(url, "youtu.be/"); ok {
			id, _, _ := strings.Cut(after, "?")
			if id != "" {
				return id, true
			}
		}
	}

	path, _, _ := strings.Cut(url, "?")
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], true
		}
	}
	return "", false
}
