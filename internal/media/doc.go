// Package media defines the domain records shared across the pipeline:
// transcription results (utterances, words, full text) and the video
// metadata reported by the downloader.
//
// Ordering of utterances and words is chronological and preserved exactly
// as the transcription provider returned it; the formatter and the
// structured transcript file both depend on that ordering.
package media
