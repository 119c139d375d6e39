// Package services hosts clients for external collaborators (the
// transcription API, the media downloader) plus the shared error markers
// used to classify failures at the command boundary.
package services
