package main

import (
	"testing"
	"unicode/utf8"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0m 0s"},
		{65, "1m 5s"},
		{245, "4m 5s"},
		{3600, "1h 0m"},
		{7385, "2h 3m"},
		{-5, "0m 0s"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := formatClock(245); got != "4:05" {
		t.Errorf("formatClock(245) = %q", got)
	}
	if got := formatClock(9); got != "0:09" {
		t.Errorf("formatClock(9) = %q", got)
	}
}

func TestFormatViewCount(t *testing.T) {
	cases := []struct {
		views int64
		want  string
	}{
		{950, "950 views"},
		{1500, "1.5K views"},
		{2_300_000, "2.3M views"},
	}
	for _, tc := range cases {
		if got := formatViewCount(tc.views); got != tc.want {
			t.Errorf("formatViewCount(%d) = %q, want %q", tc.views, got, tc.want)
		}
	}
}

func TestFormatUploadDate(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"20240115", "2024-01-15"},
		{"2024", "2024"},
		// 8 characters is not enough; every byte must be a digit.
		{"recently", "recently"},
		{"2024x115", "2024x115"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := formatUploadDate(tc.date); got != tc.want {
			t.Errorf("formatUploadDate(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("hello", 10); got != "hello" {
		t.Errorf("short input should pass through, got %q", got)
	}
	if got := truncateText("hello world", 5); got != "hello..." {
		t.Errorf("truncateText = %q", got)
	}
}

func TestTruncateTextKeepsRuneBoundaries(t *testing.T) {
	// "é" is two bytes; a cut at byte 2 would land mid-rune.
	if got := truncateText("héllo", 2); got != "h..." {
		t.Errorf("truncateText = %q, want %q", got, "h...")
	}
	input := "これはテストです"
	for limit := 1; limit < len(input); limit++ {
		if got := truncateText(input, limit); !utf8.ValidString(got) {
			t.Fatalf("invalid UTF-8 at limit %d: %q", limit, got)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"https://www.youtube.com/watch?v=abc123&t=42s", "abc123", true},
		{"https://youtu.be/abc123", "abc123", true},
		{"https://youtu.be/abc123?si=tracking", "abc123", true},
		{"https://vimeo.com/987654", "987654", true},
		{"https://www.twitch.tv/videos/112233", "112233", true},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := extractVideoID(tc.url)
		if ok != tc.ok || got != tc.want {
			t.Errorf("extractVideoID(%q) = (%q, %v), want (%q, %v)", tc.url, got, ok, tc.want, tc.ok)
		}
	}
}
