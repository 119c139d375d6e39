// Package transcript renders diarized transcription results into
// human-readable text. Formatting is pure: the same TranscriptData always
// produces byte-identical output, which the reindexer relies on.
package transcript
