// Package reindex rebuilds the search index from the transcript tree on
// disk. The filesystem is authoritative; every run re-derives each row
// from transcript.json and metadata.json, so a lost or stale database is
// recoverable in one pass.
package reindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/index"
	"scribe/internal/media"
	"scribe/internal/storage"
	"scribe/internal/transcript"
)

// Summary reports what a reindex run accomplished.
type Summary struct {
	Indexed int
	Skipped int
}

// Reindexer walks transcript directories and upserts one index row per
// unit.
type Reindexer struct {
	idx    *index.Store
	files  *storage.Store
	logger *slog.Logger
}

// New returns a Reindexer over the given index and storage tree.
func New(idx *index.Store, files *storage.Store, logger *slog.Logger) *Reindexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reindexer{idx: idx, files: files, logger: logger}
}

// Run scans the whole tree and indexes every transcript unit it finds. A
// unit that cannot be parsed or written is logged and skipped; the walk
// itself only fails on context cancellation.
func (r *Reindexer) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	err := storage.WalkUnits(r.files.Root(), func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.indexUnit(ctx, dir); err != nil {
			summary.Skipped++
			r.logger.Warn("skipping transcript directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			return nil
		}
		summary.Indexed++
		return nil
	})
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// IndexUnit indexes a single leaf directory. Exposed so commands that just
// wrote a transcript can index it without a full tree scan.
func (r *Reindexer) IndexUnit(ctx context.Context, dir string) error {
	return r.indexUnit(ctx, dir)
}

func (r *Reindexer) indexUnit(ctx context.Context, dir string) error {
	rec, err := r.buildRecord(dir)
	if err != nil {
		return err
	}
	if err := r.idx.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("index %s: %w", rec.VideoID, err)
	}
	return nil
}

func (r *Reindexer) buildRecord(dir string) (*index.Record, error) {
	raw, err := os.ReadFile(filepath.Join(dir, storage.TranscriptJSONFile))
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var data media.TranscriptData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	meta, err := storage.ReadMetadataMap(dir)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	platform, channel := r.locate(dir)
	videoID := filepath.Base(dir)
	if id, ok := storage.MetaString(meta, "id"); ok {
		videoID = id
	}

	text := data.Text
	if text == "" {
		text = transcript.FormatPlain(&data)
	}

	rec := &index.Record{
		VideoID:        videoID,
		Platform:       platform,
		Channel:        channel,
		Path:           dir,
		SpeakerCount:   data.SpeakerCount(),
		WordCount:      data.WordCount(),
		Confidence:     data.Confidence,
		TranscriptText: text,
	}
	if title, ok := storage.MetaString(meta, "title"); ok {
		rec.Title = title
	} else {
		rec.Title = videoID
	}
	if name, ok := storage.MetaString(meta, "channel"); ok {
		rec.Channel = name
	} else if uploader, ok := storage.MetaString(meta, "uploader"); ok {
		rec.Channel = uploader
	}
	if handle, ok := storage.MetaString(meta, "uploader_id"); ok {
		rec.ChannelHandle = handle
	}
	if channelID, ok := storage.MetaString(meta, "channel_id"); ok {
		rec.ChannelID = channelID
	}
	if url, ok := storage.MetaString(meta, "webpage_url"); ok {
		rec.URL = url
	} else if url, ok := storage.MetaString(meta, "url"); ok {
		rec.URL = url
	}
	if date, ok := storage.MetaString(meta, "upload_date"); ok {
		rec.UploadDate = date
	}
	if desc, ok := storage.MetaString(meta, "description"); ok {
		rec.Description = desc
	}
	if thumb, ok := storage.MetaString(meta, "thumbnail"); ok {
		rec.Thumbnail = thumb
	}
	if duration, ok := storage.MetaInt64(meta, "duration"); ok {
		rec.Duration = &duration
	} else if data.AudioDuration != nil {
		rec.Duration = data.AudioDuration
	}
	if views, ok := storage.MetaInt64(meta, "view_count"); ok {
		rec.ViewCount = &views
	}
	if likes, ok := storage.MetaInt64(meta, "like_count"); ok {
		rec.LikeCount = &likes
	}
	return rec, nil
}

// locate derives platform and channel from a unit's position under the
// root. Units shallower than platform/channel/video get permissive
// defaults so hand-arranged trees still index.
func (r *Reindexer) locate(dir string) (platform, channel string) {
	platform = "unknown"
	channel = "Unknown"
	rel, err := filepath.Rel(r.files.Root(), dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return platform, channel
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) >= 3 {
		platform = parts[0]
		channel = parts[1]
	} else if len(parts) == 2 {
		platform = parts[0]
	}
	return platform, channel
}
