package media

import "testing"

func TestSpeakerCount(t *testing.T) {
	data := &TranscriptData{
		Utterances: []Utterance{
			{Speaker: "A", Text: "Hello."},
			{Speaker: "B", Text: "Hi."},
			{Speaker: "A", Text: "How are you?"},
		},
	}
	if got := data.SpeakerCount(); got != 2 {
		t.Errorf("SpeakerCount = %d, want 2", got)
	}

	empty := &TranscriptData{}
	if got := empty.SpeakerCount(); got != 0 {
		t.Errorf("SpeakerCount on empty = %d, want 0", got)
	}
}

func TestWordCount(t *testing.T) {
	data := &TranscriptData{Text: "  Hello and   welcome. "}
	if got := data.WordCount(); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	empty := ""
	channel := "Economics Explained"

	if got := FirstNonEmpty(nil, &empty, &channel); got == nil || *got != channel {
		t.Errorf("FirstNonEmpty = %v, want %q", got, channel)
	}
	if got := FirstNonEmpty(nil, &empty); got != nil {
		t.Errorf("FirstNonEmpty with no candidates = %v, want nil", got)
	}
}
