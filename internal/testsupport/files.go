package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/media"
	"scribe/internal/storage"
)

// SampleTranscript returns a small two-speaker transcript usable as a
// fixture across packages.
func SampleTranscript() *media.TranscriptData {
	confidence := 0.95
	duration := int64(8)
	return &media.TranscriptData{
		ID:   "job-fixture",
		Text: "Hello and welcome. Thanks for having me.",
		Utterances: []media.Utterance{
			{Speaker: "A", Text: "Hello and welcome.", Start: 0, End: 2500},
			{Speaker: "B", Text: "Thanks for having me.", Start: 2500, End: 5000},
		},
		Confidence:    &confidence,
		AudioDuration: &duration,
	}
}

// WriteTranscriptUnit lays out a complete transcript directory under root
// at platform/channel/videoID and returns its path.
func WriteTranscriptUnit(t testing.TB, root, platform, channel, videoID string, data *media.TranscriptData, meta map[string]any) string {
	t.Helper()

	dir := filepath.Join(root, platform, channel, videoID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatalf("marshal transcript: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.TranscriptJSONFile), raw, 0o644); err != nil {
		t.Fatalf("write transcript.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.TranscriptMarkdownFile), []byte("## Transcript\n\n"+data.Text+"\n"), 0o644); err != nil {
		t.Fatalf("write transcript.md: %v", err)
	}

	if meta == nil {
		meta = map[string]any{"id": videoID, "title": videoID}
	}
	rawMeta, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.MetadataFile), rawMeta, 0o644); err != nil {
		t.Fatalf("write metadata.json: %v", err)
	}
	return dir
}
