package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scribe/internal/reindex"
	"scribe/internal/services"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "read <video-id-or-path>",
		Short: "Print a transcript by video ID or directory path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveTranscript(cmd, ctx, args[0])
			if err != nil {
				return err
			}
			files, err := ctx.fileStore()
			if err != nil {
				return err
			}
			content, err := files.Read(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if content.Structured == nil {
					return services.Wrap(services.ErrNotFound, "read", "",
						"no structured transcript available at "+dir, nil)
				}
				encoded, err := json.MarshalIndent(content.Structured, "", "  ")
				if err != nil {
					return fmt.Errorf("encode transcript: %w", err)
				}
				fmt.Fprintln(out, string(encoded))
				return nil
			}
			if content.Text == nil {
				return services.Wrap(services.ErrNotFound, "read", "",
					"no transcript text available at "+dir, nil)
			}
			fmt.Fprintln(out, *content.Text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output structured transcript JSON with timestamps")
	return cmd
}

// resolveTranscript turns a video ID or filesystem path into a transcript
// location: existing paths pass through, then the index is consulted, then
// the storage tree is scanned and any hit is indexed on the spot.
func resolveTranscript(cmd *cobra.Command, ctx *commandContext, ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}

	idx, err := ctx.openIndex()
	if err != nil {
		return "", err
	}
	defer idx.Close()

	rec, err := idx.GetByVideoID(cmd.Context(), ref)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.Path, nil
	}

	files, err := ctx.fileStore()
	if err != nil {
		return "", err
	}
	if dir, ok := files.FindVideoDir(ref); ok {
		logger, err := ctx.ensureLogger()
		if err != nil {
			return "", err
		}
		logger.Info("found on disk, indexing", "dir", dir)
		if err := reindex.New(idx, files, logger).IndexUnit(cmd.Context(), dir); err != nil {
			return "", err
		}
		return dir, nil
	}

	return "", services.Wrap(services.ErrNotFound, "read", "",
		fmt.Sprintf("no transcript found for %q", ref), nil)
}
