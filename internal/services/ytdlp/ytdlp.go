// Package ytdlp drives the yt-dlp binary for metadata extraction, audio
// download, and flat playlist listings. All invocations go through a
// swappable command runner so tests never spawn the real tool.
package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"scribe/internal/media"
	"scribe/internal/services"
)

// DefaultBinary is used when no downloader binary is configured.
const DefaultBinary = "yt-dlp"

// knownBinaryPaths are probed before falling back to PATH lookup.
var knownBinaryPaths = []string{
	"/opt/homebrew/bin/yt-dlp",
	"/usr/local/bin/yt-dlp",
	"/usr/bin/yt-dlp",
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Downloader invokes yt-dlp.
type Downloader struct {
	binary             string
	cookiesFile        string
	cookiesFromBrowser string
	runner             commandRunner
}

// New creates a Downloader. An empty binary defers resolution to known
// install locations and PATH at call time.
func New(binary, cookiesFile, cookiesFromBrowser string) *Downloader {
	return &Downloader{
		binary:             strings.TrimSpace(binary),
		cookiesFile:        strings.TrimSpace(cookiesFile),
		cookiesFromBrowser: strings.TrimSpace(cookiesFromBrowser),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (d *Downloader) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	d.runner = runner
}

// ResolveBinary returns the yt-dlp executable to invoke, or an error with
// install guidance when none can be found.
func (d *Downloader) ResolveBinary() (string, error) {
	if d.binary != "" {
		return d.binary, nil
	}
	for _, candidate := range knownBinaryPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if path, err := exec.LookPath(DefaultBinary); err == nil {
		return path, nil
	}
	return "", services.Wrap(services.ErrDownload, "ytdlp", "resolve binary",
		"yt-dlp not found; install it and ensure it is on PATH", nil)
}

// cookieArgs translates cookie settings into yt-dlp flags. A cookies file
// wins over browser extraction when both are set.
func (d *Downloader) cookieArgs() []string {
	if d.cookiesFile != "" {
		return []string{"--cookies", d.cookiesFile}
	}
	if d.cookiesFromBrowser != "" {
		return []string{"--cookies-from-browser", d.cookiesFromBrowser}
	}
	return nil
}

func (d *Downloader) run(ctx context.Context, args ...string) ([]byte, error) {
	binary, err := d.ResolveBinary()
	if err != nil {
		return nil, err
	}
	full := append(d.cookieArgs(), args...)
	if d.runner != nil {
		return d.runner(ctx, binary, full...)
	}

	cmd := exec.CommandContext(ctx, binary, full...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, services.Wrap(services.ErrDownload, "ytdlp", "run", detail, err)
	}
	return output, nil
}

// ExtractMetadata fetches a video's metadata without downloading content.
func (d *Downloader) ExtractMetadata(ctx context.Context, url string) (*media.VideoMetadata, error) {
	output, err := d.run(ctx, "--dump-json", "--no-download", url)
	if err != nil {
		return nil, err
	}
	raw, err := parseRawVideo(output)
	if err != nil {
		return nil, services.Wrap(services.ErrDownload, "ytdlp", "extract metadata", "parse output", err)
	}
	return raw.toMetadata(url), nil
}

// DownloadAudio downloads a video's audio as MP3 into destDir under a
// short random name, returning the file path and the metadata yt-dlp
// printed alongside the download.
func (d *Downloader) DownloadAudio(ctx context.Context, url, destDir string) (string, *media.VideoMetadata, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", nil, services.Wrap(services.ErrDownload, "ytdlp", "download audio", "ensure downloads dir", err)
	}

	tempID := uuid.NewString()[:8]
	template := filepath.Join(destDir, tempID+".%(ext)s")

	output, err := d.run(ctx,
		"-f", "bestaudio",
		"-x",
		"--audio-format", "mp3",
		"--print-json",
		"-o", template,
		url,
	)
	if err != nil {
		return "", nil, err
	}
	raw, err := parseRawVideo(output)
	if err != nil {
		return "", nil, services.Wrap(services.ErrDownload, "ytdlp", "download audio", "parse output", err)
	}
	meta := raw.toMetadata(url)

	audioPath := filepath.Join(destDir, tempID+".mp3")
	if _, err := os.Stat(audioPath); err == nil {
		return audioPath, meta, nil
	}

	// The post-processor may have kept a different extension.
	entries, err := os.ReadDir(destDir)
	if err == nil {
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), tempID) {
				return filepath.Join(destDir, entry.Name()), meta, nil
			}
		}
	}
	return "", nil, services.Wrap(services.ErrDownload, "ytdlp", "download audio",
		fmt.Sprintf("downloaded audio file not found for %s", url), nil)
}

// FetchPlaylistEntries lists a playlist, channel tab or remote search as
// flat metadata rows without downloading anything. Malformed lines in the
// tool's NDJSON output are skipped.
func (d *Downloader) FetchPlaylistEntries(ctx context.Context, url string, limit int) ([]media.PlaylistEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	output, err := d.run(ctx,
		"--dump-json",
		"--flat-playlist",
		"--playlist-end", strconv.Itoa(limit),
		"--no-warnings",
		"--extractor-args", "youtubetab:skip=authcheck",
		url,
	)
	if err != nil {
		return nil, err
	}
	return parsePlaylistLines(output), nil
}

// ChannelVideos lists the latest uploads of a channel given a URL, an
// @handle, or a bare channel ID.
func (d *Downloader) ChannelVideos(ctx context.Context, channel string, limit int) ([]media.PlaylistEntry, error) {
	return d.FetchPlaylistEntries(ctx, normalizeChannelURL(channel), limit)
}

// Search runs a remote YouTube search and returns the top matches.
func (d *Downloader) Search(ctx context.Context, query string, limit int) ([]media.PlaylistEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return d.FetchPlaylistEntries(ctx, fmt.Sprintf("ytsearch%d:%s", limit, query), limit)
}

// normalizeChannelURL turns any accepted channel reference into a URL for
// the uploads tab.
func normalizeChannelURL(channel string) string {
	channel = strings.TrimRight(strings.TrimSpace(channel), "/")
	switch {
	case strings.HasSuffix(channel, "/videos"):
		return channel
	case strings.Contains(channel, "youtube.com/"):
		return channel + "/videos"
	case strings.HasPrefix(channel, "@"):
		return "https://www.youtube.com/" + channel + "/videos"
	default:
		return "https://www.youtube.com/channel/" + channel + "/videos"
	}
}
