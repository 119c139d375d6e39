package storage

import (
	"regexp"
	"strings"
)

// Artifact file names inside a leaf transcript directory.
const (
	TranscriptMarkdownFile = "transcript.md"
	TranscriptTextFile     = "transcript.txt"
	TranscriptJSONFile     = "transcript.json"
	MetadataFile           = "metadata.json"
	AudioFile              = "audio.mp3"
)

var (
	unsafeChars    = regexp.MustCompile(`[<>:"/\\|?*]`)
	separatorRuns  = regexp.MustCompile(`[\s_]+`)
	fallbackName   = "untitled"
	maxChannelLen  = 100
	maxVideoKeyLen = 50
)

// SanitizeFileName makes a string safe for use as a single path segment.
// Characters illegal in filesystem names become underscores, runs of
// whitespace and underscores collapse to one underscore, and the result is
// trimmed and capped at maxLen runes. Never returns an empty string.
// Idempotent: sanitizing an already-sanitized name is a no-op.
func SanitizeFileName(name string, maxLen int) string {
	sanitized := unsafeChars.ReplaceAllString(name, "_")
	sanitized = separatorRuns.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_ ")

	if runes := []rune(sanitized); maxLen > 0 && len(runes) > maxLen {
		sanitized = strings.TrimRight(string(runes[:maxLen]), "_")
	}

	if sanitized == "" {
		return fallbackName
	}
	return sanitized
}

// platformTable maps URL domains to short platform tags. Ordered: the first
// matching entry wins.
var platformTable = []struct {
	domain string
	tag    string
}{
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"vimeo.com", "vimeo"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"twitch.tv", "twitch"},
	{"dailymotion.com", "dailymotion"},
	{"facebook.com", "facebook"},
	{"fb.watch", "facebook"},
	{"instagram.com", "instagram"},
	{"tiktok.com", "tiktok"},
}

// PlatformFromURL derives a lowercase platform tag from a source URL.
// Unknown domains fall back to the first label before the first dot, or
// "unknown" when nothing can be parsed. Total: never fails.
func PlatformFromURL(rawURL string) string {
	lower := strings.ToLower(rawURL)

	domain := lower
	if _, rest, ok := strings.Cut(lower, "://"); ok {
		domain = rest
	}
	domain, _, _ = strings.Cut(domain, "/")
	domain = strings.TrimPrefix(domain, "www.")

	for _, entry := range platformTable {
		if strings.Contains(domain, entry.domain) {
			return entry.tag
		}
	}

	label, _, _ := strings.Cut(domain, ".")
	if label == "" {
		return "unknown"
	}
	return label
}
