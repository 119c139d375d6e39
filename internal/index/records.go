package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Record is one indexed transcript. VideoID is the natural key: upserting
// an existing ID replaces the prior row entirely, full-text shadow
// included. TranscriptText feeds the shadow and is not stored on the row
// itself.
type Record struct {
	ID             int64
	VideoID        string
	URL            string
	Title          string
	Channel        string
	ChannelHandle  string
	ChannelID      string
	Platform       string
	Duration       *int64
	UploadDate     string
	Description    string
	Thumbnail      string
	ViewCount      *int64
	LikeCount      *int64
	Path           string
	SpeakerCount   int
	WordCount      int
	Confidence     *float64
	IndexedAt      time.Time
	TranscriptText string
}

// Upsert writes a record and refreshes its full-text shadow in a single
// transaction: either both land or the record is not considered indexed.
func (s *Store) Upsert(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(rec.VideoID) == "" {
		return errors.New("record video ID is empty")
	}
	rec.IndexedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// INSERT OR REPLACE assigns a fresh rowid, so drop the old shadow row
	// first or it would be orphaned.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transcripts_fts WHERE rowid IN (SELECT id FROM transcripts WHERE video_id = ?)`,
		rec.VideoID,
	); err != nil {
		return fmt.Errorf("clear stale fts row: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts
         (video_id, url, title, channel, channel_handle, channel_id, platform, duration,
          upload_date, description, thumbnail, view_count, like_count, indexed_at, path,
          speaker_count, word_count, confidence)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.VideoID,
		nullableString(rec.URL),
		rec.Title,
		rec.Channel,
		nullableString(rec.ChannelHandle),
		nullableString(rec.ChannelID),
		rec.Platform,
		nullableInt64(rec.Duration),
		nullableString(rec.UploadDate),
		nullableString(rec.Description),
		nullableString(rec.Thumbnail),
		nullableInt64(rec.ViewCount),
		nullableInt64(rec.LikeCount),
		rec.IndexedAt.Format(time.RFC3339Nano),
		rec.Path,
		rec.SpeakerCount,
		rec.WordCount,
		nullableFloat64(rec.Confidence),
	)
	if err != nil {
		return fmt.Errorf("upsert transcript: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO transcripts_fts (rowid, title, channel, description, transcript_text)
         VALUES (?, ?, ?, ?, ?)`,
		id, rec.Title, rec.Channel, rec.Description, rec.TranscriptText,
	); err != nil {
		return fmt.Errorf("write fts row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

const recordColumns = "id, video_id, url, title, channel, channel_handle, channel_id, platform, duration, upload_date, description, thumbnail, view_count, like_count, indexed_at, path, speaker_count, word_count, confidence"

// GetByVideoID returns the row for a video ID, or nil when absent.
func (s *Store) GetByVideoID(ctx context.Context, videoID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM transcripts WHERE video_id = ?`, videoID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	return rec, nil
}

// Delete removes the index row for a video ID. Files on disk are never
// touched; they remain the recoverable ground truth.
func (s *Store) Delete(ctx context.Context, videoID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transcripts_fts WHERE rowid IN (SELECT id FROM transcripts WHERE video_id = ?)`,
		videoID,
	); err != nil {
		return false, fmt.Errorf("delete fts row: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM transcripts WHERE video_id = ?`, videoID)
	if err != nil {
		return false, fmt.Errorf("delete transcript: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete: %w", err)
	}
	return affected > 0, nil
}

// ListFilter narrows List output. Filters are additive: platform is an
// exact match, channel and handle are case-insensitive substring matches.
type ListFilter struct {
	Platform string
	Channel  string
	Handle   string
	Limit    int
}

const defaultListLimit = 50

// List returns indexed transcripts newest-first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM transcripts WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, filter.Platform)
	}
	if filter.Channel != "" {
		query += ` AND channel LIKE ?`
		args = append(args, "%"+filter.Channel+"%")
	}
	if filter.Handle != "" {
		query += ` AND channel_handle LIKE ?`
		args = append(args, "%"+filter.Handle+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += ` ORDER BY indexed_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates index-wide totals.
type Stats struct {
	TotalTranscripts int64
	UniqueChannels   int64
	UniquePlatforms  int64
	TotalDuration    int64
	TotalWords       int64
}

// Stats returns aggregate counts across the whole index.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		stats    Stats
		duration sql.NullInt64
		words    sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT
            COUNT(*),
            COUNT(DISTINCT channel),
            COUNT(DISTINCT platform),
            SUM(duration),
            SUM(word_count)
        FROM transcripts`,
	).Scan(&stats.TotalTranscripts, &stats.UniqueChannels, &stats.UniquePlatforms, &duration, &words)
	if err != nil {
		return Stats{}, fmt.Errorf("index stats: %w", err)
	}
	stats.TotalDuration = duration.Int64
	stats.TotalWords = words.Int64
	return stats, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id            int64
		videoID       string
		url           sql.NullString
		title         sql.NullString
		channel       sql.NullString
		channelHandle sql.NullString
		channelID     sql.NullString
		platform      sql.NullString
		duration      sql.NullInt64
		uploadDate    sql.NullString
		description   sql.NullString
		thumbnail     sql.NullString
		viewCount     sql.NullInt64
		likeCount     sql.NullInt64
		indexedRaw    sql.NullString
		path          sql.NullString
		speakerCount  sql.NullInt64
		wordCount     sql.NullInt64
		confidence    sql.NullFloat64
	)

	if err := scanner.Scan(
		&id, &videoID, &url, &title, &channel, &channelHandle, &channelID, &platform,
		&duration, &uploadDate, &description, &thumbnail, &viewCount, &likeCount,
		&indexedRaw, &path, &speakerCount, &wordCount, &confidence,
	); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:            id,
		VideoID:       videoID,
		URL:           url.String,
		Title:         title.String,
		Channel:       channel.String,
		ChannelHandle: channelHandle.String,
		ChannelID:     channelID.String,
		Platform:      platform.String,
		UploadDate:    uploadDate.String,
		Description:   description.String,
		Thumbnail:     thumbnail.String,
		Path:          path.String,
		SpeakerCount:  int(speakerCount.Int64),
		WordCount:     int(wordCount.Int64),
	}
	if duration.Valid {
		value := duration.Int64
		rec.Duration = &value
	}
	if viewCount.Valid {
		value := viewCount.Int64
		rec.ViewCount = &value
	}
	if likeCount.Valid {
		value := likeCount.Int64
		rec.LikeCount = &value
	}
	if confidence.Valid {
		value := confidence.Float64
		rec.Confidence = &value
	}
	if indexedRaw.Valid {
		if parsed, err := time.Parse(time.RFC3339Nano, indexedRaw.String); err == nil {
			rec.IndexedAt = parsed
		}
	}
	return rec, nil
}
