package media

import "strings"

// Utterance is a diarized span of speech attributed to a single speaker.
// Start and End are millisecond offsets into the audio.
type Utterance struct {
	Speaker    string   `json:"speaker"`
	Text       string   `json:"text"`
	Start      int64    `json:"start"`
	End        int64    `json:"end"`
	Confidence *float64 `json:"confidence"`
}

// Word carries word-level timing with optional speaker attribution.
type Word struct {
	Text       string   `json:"text"`
	Start      int64    `json:"start"`
	End        int64    `json:"end"`
	Confidence *float64 `json:"confidence"`
	Speaker    *string  `json:"speaker"`
}

// TranscriptData is the normalized result of one transcription job. It is
// serialized verbatim into transcript.json, which makes it the durable
// structured record for a video.
type TranscriptData struct {
	ID            string      `json:"id"`
	Text          string      `json:"text"`
	Utterances    []Utterance `json:"utterances"`
	Words         []Word      `json:"words"`
	Confidence    *float64    `json:"confidence"`
	AudioDuration *int64      `json:"audio_duration"`
}

// SpeakerCount reports the number of distinct speaker tokens across all
// utterances.
func (d *TranscriptData) SpeakerCount() int {
	seen := make(map[string]struct{}, 4)
	for _, u := range d.Utterances {
		seen[u.Speaker] = struct{}{}
	}
	return len(seen)
}

// WordCount tokenizes the full transcript text on whitespace.
func (d *TranscriptData) WordCount() int {
	return len(strings.Fields(d.Text))
}
