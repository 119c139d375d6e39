package index

import (
	"context"
	"fmt"
)

// applyMigrations brings an existing database up to the current schema.
// Each step probes the live schema and is a no-op when already applied, so
// the whole sequence runs on every open.
func (s *Store) applyMigrations(ctx context.Context) error {
	if err := s.migrateRemoveChapters(ctx); err != nil {
		return err
	}
	if err := s.migrateAddChannelHandle(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Store) columnExists(ctx context.Context, table, column string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

// migrateRemoveChapters drops the chapters columns carried by early
// databases. SQLite could not drop columns then, so the table is rebuilt
// and the full-text shadow recreated; the next reindex repopulates it.
func (s *Store) migrateRemoveChapters(ctx context.Context) error {
	hasChapters, err := s.columnExists(ctx, "transcripts", "chapters")
	if err != nil {
		return err
	}
	if !hasChapters {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const rebuild = `
CREATE TABLE transcripts_new (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    video_id TEXT UNIQUE,
    url TEXT,
    title TEXT,
    channel TEXT,
    channel_handle TEXT,
    channel_id TEXT,
    platform TEXT,
    duration INTEGER,
    upload_date TEXT,
    description TEXT,
    thumbnail TEXT,
    view_count INTEGER,
    like_count INTEGER,
    indexed_at TEXT,
    path TEXT,
    speaker_count INTEGER,
    word_count INTEGER,
    confidence REAL
);

INSERT INTO transcripts_new (id, video_id, url, title, channel, channel_id, platform,
    duration, upload_date, description, thumbnail, view_count, like_count,
    indexed_at, path, speaker_count, word_count, confidence)
SELECT id, video_id, url, title, channel, channel_id, platform,
    duration, upload_date, description, thumbnail, view_count, like_count,
    indexed_at, path, speaker_count, word_count, confidence
FROM transcripts;

DROP TABLE transcripts;
ALTER TABLE transcripts_new RENAME TO transcripts;

DROP TABLE IF EXISTS transcripts_fts;
CREATE VIRTUAL TABLE transcripts_fts USING fts5(
    title,
    channel,
    description,
    transcript_text
);`
	if _, err := tx.ExecContext(ctx, rebuild); err != nil {
		return fmt.Errorf("remove chapters columns: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chapters migration: %w", err)
	}
	return nil
}

// migrateAddChannelHandle adds the channel_handle column to databases
// created before handles were tracked.
func (s *Store) migrateAddChannelHandle(ctx context.Context) error {
	hasHandle, err := s.columnExists(ctx, "transcripts", "channel_handle")
	if err != nil {
		return err
	}
	if hasHandle {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "ALTER TABLE transcripts ADD COLUMN channel_handle TEXT"); err != nil {
		return fmt.Errorf("add channel_handle column: %w", err)
	}
	return nil
}
