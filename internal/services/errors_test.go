package services_test

import (
	"errors"
	"testing"

	"scribe/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrDownload, "yt-dlp", "download", "exit status 1", base)
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected ErrDownload marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrTranscription, "assemblyai", "upload", "http 401: unauthorized", nil)
	want := "transcription error: assemblyai: upload: http 401: unauthorized"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrIndex, "", "", "", nil)
	if err.Error() != "index error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
