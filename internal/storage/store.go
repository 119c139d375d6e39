package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scribe/internal/media"
	"scribe/internal/services"
)

// Store provides access to the transcript tree rooted at a single
// directory. The root comes from configuration and is passed in explicitly;
// there is no ambient global state.
type Store struct {
	root string
}

// NewStore binds a Store to the transcripts root directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the transcripts root directory.
func (s *Store) Root() string {
	return s.root
}

// CreatePath builds and creates <root>/<platform>/<channel>/<video id>,
// sanitizing the channel and video segments. Idempotent.
func (s *Store) CreatePath(platform, channel, videoID string) (string, error) {
	safeChannel := SanitizeFileName(channel, maxChannelLen)
	safeVideoID := SanitizeFileName(videoID, maxVideoKeyLen)

	dir := filepath.Join(s.root, platform, safeChannel, safeVideoID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage path: %w", err)
	}
	return dir, nil
}

// SaveTranscript writes the formatted prose and the structured record.
// Existing files are overwritten unconditionally. The JSON is indented so
// successive runs diff cleanly.
func (s *Store) SaveTranscript(dir, markdown string, data *media.TranscriptData) error {
	if err := os.WriteFile(filepath.Join(dir, TranscriptMarkdownFile), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write transcript markdown: %w", err)
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, TranscriptJSONFile), encoded, 0o644); err != nil {
		return fmt.Errorf("write transcript json: %w", err)
	}
	return nil
}

// SaveMetadata writes the downloader's raw metadata document.
func (s *Store) SaveMetadata(dir string, meta *media.VideoMetadata) error {
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), encoded, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// MoveAudio relocates a downloaded audio file into the transcript directory
// as audio.mp3 via rename. Fails when the source no longer exists.
func (s *Store) MoveAudio(source, dir string) (string, error) {
	dest := filepath.Join(dir, AudioFile)
	if err := os.Rename(source, dest); err != nil {
		return "", fmt.Errorf("move audio file: %w", err)
	}
	return dest, nil
}

// Content holds whatever transcript artifacts could be read for a request.
type Content struct {
	Text       *string
	Structured *media.TranscriptData
}

// Read loads transcript content from a leaf directory or a direct file
// path. Markdown is preferred over plain text for prose. An error tagged
// services.ErrNotFound is returned only when neither prose nor structured
// data exists.
func (s *Store) Read(pathOrDir string) (Content, error) {
	var textFile, jsonFile string

	info, err := os.Stat(pathOrDir)
	switch {
	case err == nil && info.IsDir():
		textFile = filepath.Join(pathOrDir, TranscriptMarkdownFile)
		if _, err := os.Stat(textFile); err != nil {
			textFile = filepath.Join(pathOrDir, TranscriptTextFile)
		}
		jsonFile = filepath.Join(pathOrDir, TranscriptJSONFile)
	case filepath.Ext(pathOrDir) == ".md" || filepath.Ext(pathOrDir) == ".txt":
		textFile = pathOrDir
		jsonFile = pathOrDir[:len(pathOrDir)-len(filepath.Ext(pathOrDir))] + ".json"
	default:
		textFile = pathOrDir[:len(pathOrDir)-len(filepath.Ext(pathOrDir))] + ".md"
		jsonFile = pathOrDir
	}

	var content Content
	if data, err := os.ReadFile(textFile); err == nil {
		text := string(data)
		content.Text = &text
	}
	if data, err := os.ReadFile(jsonFile); err == nil {
		var structured media.TranscriptData
		if err := json.Unmarshal(data, &structured); err != nil {
			return Content{}, fmt.Errorf("parse %s: %w", jsonFile, err)
		}
		content.Structured = &structured
	}

	if content.Text == nil && content.Structured == nil {
		return Content{}, services.Wrap(services.ErrNotFound, "storage", "read",
			fmt.Sprintf("no transcript found at %s", pathOrDir), nil)
	}
	return content, nil
}

// FindVideoDir locates the leaf directory for a video ID by scanning the
// tree. Used to adopt transcripts that exist on disk but not in the index.
func (s *Store) FindVideoDir(videoID string) (string, bool) {
	safeID := SanitizeFileName(videoID, maxVideoKeyLen)
	var found string
	_ = WalkUnits(s.root, func(dir string) error {
		if found == "" && filepath.Base(dir) == safeID {
			found = dir
		}
		return nil
	})
	return found, found != ""
}
