package transcript_test

import (
	"strings"
	"testing"

	"scribe/internal/media"
	"scribe/internal/transcript"
)

func sampleData() *media.TranscriptData {
	return &media.TranscriptData{
		ID:   "t1",
		Text: "hi there hello",
		Utterances: []media.Utterance{
			{Speaker: "A", Text: "hi", Start: 0, End: 1000},
			{Speaker: "A", Text: "there", Start: 1000, End: 2000},
			{Speaker: "B", Text: "hello", Start: 2000, End: 3000},
		},
	}
}

func TestFormatPlainBatchesConsecutiveSpeakers(t *testing.T) {
	got := transcript.FormatPlain(sampleData())
	want := "Speaker A: hi there\n\nSpeaker B: hello"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
	if n := len(strings.Split(got, "\n\n")); n != 2 {
		t.Fatalf("expected exactly 2 paragraphs, got %d", n)
	}
}

func TestFormatMarkdownTimestamps(t *testing.T) {
	got := transcript.FormatMarkdown(sampleData())
	if !strings.HasPrefix(got, "## Transcript\n\n") {
		t.Fatalf("missing heading: %q", got)
	}
	if !strings.Contains(got, "**Speaker A** [00:00]: hi there") {
		t.Fatalf("missing first paragraph: %q", got)
	}
	if !strings.Contains(got, "**Speaker B** [00:02]: hello") {
		t.Fatalf("missing second paragraph: %q", got)
	}
}

func TestFormatFallsBackToFlatText(t *testing.T) {
	data := &media.TranscriptData{Text: "raw text only"}
	if got := transcript.FormatPlain(data); got != "raw text only" {
		t.Fatalf("plain fallback: %q", got)
	}
	if got := transcript.FormatMarkdown(data); got != "## Transcript\n\nraw text only" {
		t.Fatalf("markdown fallback: %q", got)
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	data := sampleData()
	first := transcript.FormatMarkdown(data)
	for i := 0; i < 5; i++ {
		if again := transcript.FormatMarkdown(data); again != first {
			t.Fatalf("formatting not deterministic on run %d", i)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{59_000, "00:59"},
		{61_000, "01:01"},
		{3_599_000, "59:59"},
		{3_600_000, "01:00:00"},
		{7_325_000, "02:02:05"},
	}
	for _, tc := range cases {
		if got := transcript.FormatTimestamp(tc.ms); got != tc.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
