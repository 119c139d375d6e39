// Package assemblyai wraps the AssemblyAI transcription API: upload an
// audio file, create a transcription job, then poll until the job reaches
// a terminal status.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"scribe/internal/media"
)

const (
	defaultBaseURL      = "https://api.assemblyai.com"
	defaultPollInterval = 3 * time.Second

	statusCompleted = "completed"
	statusError     = "error"
)

// Config carries the caller-supplied transcription settings.
type Config struct {
	APIKey   string
	Language string
	// Timeout bounds a single Transcribe call end to end. Zero means no
	// deadline beyond the caller's context; long recordings can poll for
	// an hour or more.
	Timeout time.Duration
}

// Client talks to the AssemblyAI REST API.
type Client struct {
	cfg          Config
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithPollInterval overrides the delay between job status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// NewClient constructs an AssemblyAI client. The API key is required;
// everything else has workable defaults.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("assemblyai: api key required")
	}
	client := &Client{
		cfg:     cfg,
		baseURL: defaultBaseURL,
		// Uploads stream whole audio files, so no client-wide timeout;
		// per-call deadlines come from the context.
		httpClient:   &http.Client{},
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Transcribe uploads the audio file, submits a transcription job with
// speaker labels enabled, and polls until it completes or fails.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (*media.TranscriptData, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	audioURL, err := c.upload(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	jobID, err := c.createJob(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	return c.pollJob(ctx, jobID)
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

func (c *Client) upload(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: open audio: %w", err)
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/upload", file)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	body, err := c.do(req, "upload")
	if err != nil {
		return "", err
	}
	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("assemblyai upload: decode response: %w", err)
	}
	if parsed.UploadURL == "" {
		return "", errors.New("assemblyai upload: empty upload URL")
	}
	return parsed.UploadURL, nil
}

type createJobRequest struct {
	AudioURL      string `json:"audio_url"`
	SpeakerLabels bool   `json:"speaker_labels"`
	Punctuate     bool   `json:"punctuate"`
	FormatText    bool   `json:"format_text"`
	LanguageCode  string `json:"language_code,omitempty"`
}

type jobResponse struct {
	media.TranscriptData
	Status string  `json:"status"`
	Error  *string `json:"error"`
}

func (c *Client) createJob(ctx context.Context, audioURL string) (string, error) {
	payload := createJobRequest{
		AudioURL:      audioURL,
		SpeakerLabels: true,
		Punctuate:     true,
		FormatText:    true,
		LanguageCode:  c.cfg.Language,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("assemblyai create: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("assemblyai create: request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req, "create")
	if err != nil {
		return "", err
	}
	var parsed jobResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("assemblyai create: decode response: %w", err)
	}
	if parsed.ID == "" {
		return "", errors.New("assemblyai create: response missing job ID")
	}
	return parsed.ID, nil
}

// pollJob checks job status every poll interval. Queued, processing and
// any unrecognized statuses keep the loop going; only completed and error
// are terminal.
func (c *Client) pollJob(ctx context.Context, jobID string) (*media.TranscriptData, error) {
	for {
		job, err := c.fetchJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		switch job.Status {
		case statusCompleted:
			data := job.TranscriptData
			return &data, nil
		case statusError:
			message := "transcription failed"
			if job.Error != nil && strings.TrimSpace(*job.Error) != "" {
				message = strings.TrimSpace(*job.Error)
			}
			return nil, fmt.Errorf("assemblyai job %s: %s", jobID, message)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("assemblyai job %s: %w", jobID, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) fetchJob(ctx context.Context, jobID string) (*jobResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("assemblyai poll: request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)

	body, err := c.do(req, "poll")
	if err != nil {
		return nil, err
	}
	var parsed jobResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("assemblyai poll: decode response: %w", err)
	}
	return &parsed, nil
}

func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assemblyai %s: request failed: %w", operation, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assemblyai %s: read body: %w", operation, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("assemblyai %s: http %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
