package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/testsupport"
)

func seedTranscript(t *testing.T, env *cliTestEnv, platform, channel, videoID, title string) string {
	t.Helper()
	root := filepath.Join(env.dataDir, "transcripts")
	return testsupport.WriteTranscriptUnit(t, root, platform, channel, videoID,
		testsupport.SampleTranscript(), map[string]any{
			"id":      videoID,
			"title":   title,
			"channel": channel,
		})
}

func TestReindexAndSearchFlow(t *testing.T) {
	env := setupCLITestEnv(t)
	seedTranscript(t, env, "youtube", "Economics Explained", "vid1", "Understanding Inflation")
	seedTranscript(t, env, "vimeo", "History Matters", "vid2", "The Fall of Rome")

	out, err := runCLI(t, env, "reindex")
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	requireContains(t, out, "Reindexed 2 transcripts.")

	out, err = runCLI(t, env, "search", "welcome")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Understanding Inflation")
	requireContains(t, out, "Match:")

	out, err = runCLI(t, env, "search", "zebra")
	if err != nil {
		t.Fatalf("search with no hits: %v", err)
	}
	requireContains(t, out, "No results found")
}

func TestStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "stats")
	if err != nil {
		t.Fatalf("stats on empty index: %v", err)
	}
	requireContains(t, out, "No transcripts in the index yet.")

	seedTranscript(t, env, "youtube", "Economics Explained", "vid1", "Understanding Inflation")
	if _, err := runCLI(t, env, "reindex"); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	out, err = runCLI(t, env, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Total transcripts: 1")
	requireContains(t, out, "Unique channels:   1")
}

func TestReadCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := seedTranscript(t, env, "youtube", "Economics Explained", "vid1", "Understanding Inflation")

	// By path.
	out, err := runCLI(t, env, "read", dir)
	if err != nil {
		t.Fatalf("read by path: %v", err)
	}
	requireContains(t, out, "Hello and welcome.")

	// By video ID, auto-indexed from disk without a prior reindex.
	out, err = runCLI(t, env, "read", "vid1")
	if err != nil {
		t.Fatalf("read by id: %v", err)
	}
	requireContains(t, out, "Hello and welcome.")

	// Structured output.
	out, err = runCLI(t, env, "read", "vid1", "--json")
	if err != nil {
		t.Fatalf("read --json: %v", err)
	}
	requireContains(t, out, `"utterances"`)

	if _, err := runCLI(t, env, "read", "missing-id"); err == nil {
		t.Fatal("expected error for unknown transcript")
	}
}

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	requireContains(t, out, "No transcripts found.")

	seedTranscript(t, env, "youtube", "Economics Explained", "vid1", "Understanding Inflation")
	seedTranscript(t, env, "vimeo", "History Matters", "vid2", "The Fall of Rome")

	out, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Found 2 transcripts")
	requireContains(t, out, "Understanding Inflation")

	out, err = runCLI(t, env, "list", "--platform", "vimeo")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	requireContains(t, out, "The Fall of Rome")
	if strings.Contains(out, "Understanding Inflation") {
		t.Fatalf("platform filter leaked other rows: %q", out)
	}
}

func TestDeleteCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedTranscript(t, env, "youtube", "Economics Explained", "vid1", "Understanding Inflation")
	if _, err := runCLI(t, env, "reindex"); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	out, err := runCLI(t, env, "delete", "vid1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "Removed vid1")

	out, err = runCLI(t, env, "delete", "vid1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	requireContains(t, out, "No index entry for vid1.")
}

func TestInitCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "init", "--api-key", "sk-new")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	requireContains(t, out, "Credentials saved")

	envFile := filepath.Join(env.dataDir, ".env")
	raw, err := os.ReadFile(envFile)
	if err != nil {
		t.Fatalf("read env file: %v", err)
	}
	if string(raw) != "ASSEMBLYAI_API_KEY=sk-new\n" {
		t.Fatalf("unexpected env file contents %q", raw)
	}

	// Without --force the file is left alone.
	out, err = runCLI(t, env, "init", "--api-key", "sk-other")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	requireContains(t, out, "Use --force to overwrite.")

	out, err = runCLI(t, env, "init", "--api-key", "sk-other", "--force")
	if err != nil {
		t.Fatalf("forced init: %v", err)
	}
	requireContains(t, out, "Credentials saved")
}
