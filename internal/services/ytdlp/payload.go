package ytdlp

import (
	"encoding/json"
	"strings"

	"scribe/internal/media"
)

// rawVideo is the subset of yt-dlp's per-video JSON document we consume.
type rawVideo struct {
	ID          *string  `json:"id"`
	Title       *string  `json:"title"`
	Channel     *string  `json:"channel"`
	Uploader    *string  `json:"uploader"`
	UploaderID  *string  `json:"uploader_id"`
	Duration    *float64 `json:"duration"`
	UploadDate  *string  `json:"upload_date"`
	Description *string  `json:"description"`
	ViewCount   *int64   `json:"view_count"`
	LikeCount   *int64   `json:"like_count"`
	Thumbnail   *string  `json:"thumbnail"`
	WebpageURL  *string  `json:"webpage_url"`
	Extractor   *string  `json:"extractor"`
}

func parseRawVideo(output []byte) (*rawVideo, error) {
	var raw rawVideo
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func (r *rawVideo) toMetadata(url string) *media.VideoMetadata {
	meta := &media.VideoMetadata{
		Title:       "Unknown Title",
		Channel:     "Unknown Channel",
		Uploader:    r.Uploader,
		UploaderID:  r.UploaderID,
		UploadDate:  r.UploadDate,
		Description: r.Description,
		ViewCount:   r.ViewCount,
		LikeCount:   r.LikeCount,
		Thumbnail:   r.Thumbnail,
		URL:         url,
		WebpageURL:  r.WebpageURL,
		Extractor:   r.Extractor,
	}
	if r.ID != nil {
		meta.ID = *r.ID
	}
	if r.Title != nil && *r.Title != "" {
		meta.Title = *r.Title
	}
	if name := media.FirstNonEmpty(r.Channel, r.Uploader); name != nil {
		meta.Channel = *name
	}
	if r.Duration != nil {
		seconds := int64(*r.Duration)
		meta.Duration = &seconds
	}
	return meta
}

// rawEntry is one line of --flat-playlist NDJSON output. Channel fields
// can be absent on flat listings, in which case the playlist-level fields
// carry the channel identity.
type rawEntry struct {
	ID                *string  `json:"id"`
	Title             *string  `json:"title"`
	URL               *string  `json:"url"`
	Channel           *string  `json:"channel"`
	ChannelID         *string  `json:"channel_id"`
	Uploader          *string  `json:"uploader"`
	UploaderID        *string  `json:"uploader_id"`
	Duration          *float64 `json:"duration"`
	ViewCount         *int64   `json:"view_count"`
	UploadDate        *string  `json:"upload_date"`
	PlaylistUploader  *string  `json:"playlist_uploader"`
	PlaylistChannel   *string  `json:"playlist_channel"`
	PlaylistChannelID *string  `json:"playlist_channel_id"`
}

// toEntry converts a raw line, or returns false for rows without an ID
// (deleted and private videos surface that way).
func (r *rawEntry) toEntry() (media.PlaylistEntry, bool) {
	if r.ID == nil || *r.ID == "" {
		return media.PlaylistEntry{}, false
	}
	entry := media.PlaylistEntry{
		ID:         *r.ID,
		Title:      "Untitled",
		URL:        "https://www.youtube.com/watch?v=" + *r.ID,
		Channel:    media.FirstNonEmpty(r.Channel, r.Uploader, r.PlaylistChannel, r.PlaylistUploader),
		ChannelID:  media.FirstNonEmpty(r.ChannelID, r.UploaderID, r.PlaylistChannelID),
		ViewCount:  r.ViewCount,
		UploadDate: r.UploadDate,
	}
	if r.Title != nil && *r.Title != "" {
		entry.Title = *r.Title
	}
	if r.URL != nil && *r.URL != "" {
		entry.URL = *r.URL
	}
	if r.Duration != nil {
		seconds := int64(*r.Duration)
		entry.Duration = &seconds
	}
	return entry, true
}

func parsePlaylistLines(output []byte) []media.PlaylistEntry {
	var entries []media.PlaylistEntry
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var raw rawEntry
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}
		if entry, ok := raw.toEntry(); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
