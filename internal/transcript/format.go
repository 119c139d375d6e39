package transcript

import (
	"fmt"
	"strings"

	"scribe/internal/media"
)

// FormatTimestamp renders a millisecond offset as MM:SS, switching to
// HH:MM:SS once the offset reaches one hour.
func FormatTimestamp(ms int64) string {
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes%60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds%60)
}

// paragraph is a run of consecutive utterances from one speaker.
type paragraph struct {
	speaker string
	start   int64
	texts   []string
}

// batchBySpeaker merges consecutive same-speaker utterances. A paragraph
// boundary is emitted whenever the speaker token changes; the paragraph
// keeps the start offset of its first utterance.
func batchBySpeaker(utterances []media.Utterance) []paragraph {
	var paragraphs []paragraph
	for _, u := range utterances {
		if n := len(paragraphs); n > 0 && paragraphs[n-1].speaker == u.Speaker {
			paragraphs[n-1].texts = append(paragraphs[n-1].texts, u.Text)
			continue
		}
		paragraphs = append(paragraphs, paragraph{
			speaker: u.Speaker,
			start:   u.Start,
			texts:   []string{u.Text},
		})
	}
	return paragraphs
}

// FormatPlain renders speaker-batched paragraphs without timestamps.
// With no utterances the raw flat transcript text is returned unchanged.
func FormatPlain(data *media.TranscriptData) string {
	if len(data.Utterances) == 0 {
		return data.Text
	}

	paragraphs := batchBySpeaker(data.Utterances)
	rendered := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		rendered = append(rendered, fmt.Sprintf("Speaker %s: %s", p.speaker, strings.Join(p.texts, " ")))
	}
	return strings.Join(rendered, "\n\n")
}

// FormatMarkdown renders the transcript under a "## Transcript" heading with
// bolded speaker labels and the timestamp of each paragraph's first
// utterance.
func FormatMarkdown(data *media.TranscriptData) string {
	var out strings.Builder
	out.WriteString("## Transcript\n\n")

	if len(data.Utterances) == 0 {
		out.WriteString(data.Text)
		return out.String()
	}

	paragraphs := batchBySpeaker(data.Utterances)
	rendered := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		rendered = append(rendered, fmt.Sprintf("**Speaker %s** [%s]: %s",
			p.speaker, FormatTimestamp(p.start), strings.Join(p.texts, " ")))
	}
	out.WriteString(strings.Join(rendered, "\n\n"))
	return out.String()
}
