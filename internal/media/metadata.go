package media

// VideoMetadata describes a single acquired video as reported by the
// downloader. The raw document is persisted as metadata.json next to the
// transcript so the index can be rebuilt from disk alone.
type VideoMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Channel     string  `json:"channel"`
	Uploader    *string `json:"uploader"`
	UploaderID  *string `json:"uploader_id"`
	Duration    *int64  `json:"duration"`
	UploadDate  *string `json:"upload_date"`
	Description *string `json:"description"`
	ViewCount   *int64  `json:"view_count"`
	LikeCount   *int64  `json:"like_count"`
	Thumbnail   *string `json:"thumbnail"`
	URL         string  `json:"url"`
	WebpageURL  *string `json:"webpage_url"`
	Extractor   *string `json:"extractor"`
}

// PlaylistEntry is one row of a flat playlist listing (channel uploads or a
// remote search). Only metadata, never downloaded content.
type PlaylistEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Channel    *string `json:"channel"`
	ChannelID  *string `json:"channel_id"`
	Duration   *int64  `json:"duration"`
	ViewCount  *int64  `json:"view_count"`
	UploadDate *string `json:"upload_date"`
}

// FirstNonEmpty returns the first candidate that is non-nil and non-empty.
// Used for the ordered channel fallback chain (channel, uploader,
// playlist_channel, playlist_uploader); the priority order matters because
// providers can report conflicting values.
func FirstNonEmpty(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return c
		}
	}
	return nil
}
