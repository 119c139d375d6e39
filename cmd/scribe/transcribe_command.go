package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"scribe/internal/index"
	"scribe/internal/media"
	"scribe/internal/storage"
	"scribe/internal/transcript"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <url>",
		Short: "Download a video's audio, transcribe it, and index the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLock(func() error {
				_, err := runTranscribe(cmd, ctx, args[0])
				return err
			})
		},
	}
}

// runTranscribe executes the full acquisition pipeline for one URL and
// returns the transcript directory. Shared with the get command.
func runTranscribe(cmd *cobra.Command, ctx *commandContext, url string) (string, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return "", err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	// Resolve the transcriber first so a missing credential fails before
	// any download work.
	client, err := ctx.transcriber()
	if err != nil {
		return "", err
	}
	dl, err := ctx.downloader()
	if err != nil {
		return "", err
	}
	files, err := ctx.fileStore()
	if err != nil {
		return "", err
	}

	cmdCtx := cmd.Context()
	logger.Info("downloading audio", slog.String("url", url))
	audioPath, meta, err := dl.DownloadAudio(cmdCtx, url, cfg.DownloadsDir())
	if err != nil {
		return "", err
	}
	logger.Info("download complete",
		slog.String("title", meta.Title),
		slog.String("channel", meta.Channel))

	logger.Info("transcribing audio")
	data, err := client.Transcribe(cmdCtx, audioPath)
	if err != nil {
		return "", err
	}
	logger.Info("transcription complete", slog.Int("words", data.WordCount()))

	platform := storage.PlatformFromURL(url)
	videoKey := meta.ID
	if videoKey == "" {
		videoKey = meta.Title
	}
	dir, err := files.CreatePath(platform, meta.Channel, videoKey)
	if err != nil {
		return "", err
	}
	if _, err := files.MoveAudio(audioPath, dir); err != nil {
		return "", err
	}
	if err := files.SaveTranscript(dir, transcript.FormatMarkdown(data), data); err != nil {
		return "", err
	}
	if err := files.SaveMetadata(dir, meta); err != nil {
		return "", err
	}

	idx, err := ctx.openIndex()
	if err != nil {
		return "", err
	}
	defer idx.Close()
	if err := idx.Upsert(cmdCtx, recordFromAcquisition(url, platform, dir, videoKey, meta, data)); err != nil {
		return "", err
	}
	logger.Info("indexed transcript", slog.String("video_id", meta.ID), slog.String("path", dir))

	printTranscribeSummary(cmd, dir, meta, data)
	return dir, nil
}

// recordFromAcquisition builds an index row straight from the download
// metadata, which is richer than what a later disk reindex can recover.
func recordFromAcquisition(url, platform, dir, videoKey string, meta *media.VideoMetadata, data *media.TranscriptData) *index.Record {
	videoID := meta.ID
	if videoID == "" {
		videoID = videoKey
	}
	rec := &index.Record{
		VideoID:        videoID,
		URL:            url,
		Title:          meta.Title,
		Channel:        meta.Channel,
		Platform:       platform,
		Duration:       meta.Duration,
		ViewCount:      meta.ViewCount,
		LikeCount:      meta.LikeCount,
		Path:           dir,
		SpeakerCount:   data.SpeakerCount(),
		WordCount:      data.WordCount(),
		Confidence:     data.Confidence,
		TranscriptText: data.Text,
	}
	if meta.WebpageURL != nil && *meta.WebpageURL != "" {
		rec.URL = *meta.WebpageURL
	}
	if meta.UploaderID != nil {
		rec.ChannelHandle = *meta.UploaderID
	}
	if meta.UploadDate != nil {
		rec.UploadDate = *meta.UploadDate
	}
	if meta.Description != nil {
		rec.Description = *meta.Description
	}
	if meta.Thumbnail != nil {
		rec.Thumbnail = *meta.Thumbnail
	}
	return rec
}

func printTranscribeSummary(cmd *cobra.Command, dir string, meta *media.VideoMetadata, data *media.TranscriptData) {
	out := cmd.OutOrStdout()
	var duration int64
	if data.AudioDuration != nil {
		duration = *data.AudioDuration
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Transcription complete!")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Path: %s\n", dir)
	fmt.Fprintf(out, "Title: %s\n", meta.Title)
	fmt.Fprintf(out, "Channel: %s\n", meta.Channel)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(duration))
	fmt.Fprintf(out, "Words: %d\n", data.WordCount())
	fmt.Fprintf(out, "Speakers: %d\n", data.SpeakerCount())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Preview (first 500 chars):")
	fmt.Fprintln(out, truncateText(data.Text, 500))
}
