package assemblyai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 bytes"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}

func newTestClient(t *testing.T, server *httptest.Server, cfg Config) *Client {
	t.Helper()
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	client, err := NewClient(cfg,
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithPollInterval(time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "   "}); err == nil {
		t.Fatal("expected error for blank API key")
	}
}

func TestTranscribeHappyPath(t *testing.T) {
	var polls atomic.Int32
	var sawLanguage string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("upload missing auth header, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/upload/1"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		var req createJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode create request: %v", err)
		}
		if req.AudioURL != "https://cdn.example/upload/1" {
			t.Errorf("unexpected audio URL %q", req.AudioURL)
		}
		if !req.SpeakerLabels || !req.Punctuate || !req.FormatText {
			t.Errorf("expected speaker_labels, punctuate and format_text, got %+v", req)
		}
		sawLanguage = req.LanguageCode
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /v2/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		switch polls.Add(1) {
		case 1:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "queued"})
		case 2:
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "processing"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "job-1",
				"status": "completed",
				"text":   "hello world",
				"utterances": []map[string]any{
					{"speaker": "A", "text": "hello world", "start": 0, "end": 1500},
				},
				"confidence":     0.97,
				"audio_duration": 2,
			})
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server, Config{Language: "en"})
	data, err := client.Transcribe(context.Background(), writeAudioFixture(t))
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if data.Text != "hello world" {
		t.Fatalf("unexpected text %q", data.Text)
	}
	if len(data.Utterances) != 1 || data.Utterances[0].Speaker != "A" {
		t.Fatalf("unexpected utterances %+v", data.Utterances)
	}
	if sawLanguage != "en" {
		t.Fatalf("expected language code to be sent, got %q", sawLanguage)
	}
	if polls.Load() < 3 {
		t.Fatalf("expected the poll loop to ride out transient statuses, got %d polls", polls.Load())
	}
}

func TestTranscribeJobError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/upload/1"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /v2/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "job-1", "status": "error", "error": "audio file is unreadable",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server, Config{})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t))
	if err == nil {
		t.Fatal("expected error from failed job")
	}
	if got := err.Error(); got != "assemblyai job job-1: audio file is unreadable" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestTranscribeJobErrorWithoutMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/upload/1"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /v2/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "error"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server, Config{})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t))
	if err == nil {
		t.Fatal("expected error from failed job")
	}
	if got := err.Error(); got != "assemblyai job job-1: transcription failed" {
		t.Fatalf("unexpected fallback message %q", got)
	}
}

func TestTranscribeHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server, Config{})
	if _, err := client.Transcribe(context.Background(), writeAudioFixture(t)); err == nil {
		t.Fatal("expected error from HTTP 401")
	}
}

func TestTranscribeTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/upload/1"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /v2/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		// Never completes.
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "processing"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server, Config{Timeout: 25 * time.Millisecond})
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t))
	if err == nil {
		t.Fatal("expected timeout error for a job that never completes")
	}
}

func TestTranscribeMissingAudioFile(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := newTestClient(t, server, Config{})
	if _, err := client.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}
