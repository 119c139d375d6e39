package storage

import (
	"path/filepath"
	"strings"
)

// Info summarizes one leaf transcript directory for listings. Fields beyond
// the path segments are filled from metadata.json when present.
type Info struct {
	Path          string
	Title         string
	Channel       string
	ChannelHandle string
	Platform      string
	Duration      *int64
	UploadDate    string
	URL           string
}

// ListFilter narrows a listing. Platform is an exact tag and restricts the
// walk root; Channel and Handle are case-insensitive substring matches
// applied after the walk.
type ListFilter struct {
	Platform string
	Channel  string
	Handle   string
}

// List walks the transcript tree and returns one Info per leaf directory.
// A leaf without metadata.json still appears with values derived from its
// path; corrupt metadata degrades that one entry rather than failing the
// scan.
func (s *Store) List(filter ListFilter) ([]Info, error) {
	root := s.root
	if filter.Platform != "" {
		root = filepath.Join(s.root, filter.Platform)
	}

	results := []Info{}
	err := WalkUnits(root, func(dir string) error {
		results = append(results, s.describe(dir))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if filter.Channel != "" {
		needle := strings.ToLower(filter.Channel)
		results = keep(results, func(info Info) bool {
			return strings.Contains(strings.ToLower(info.Channel), needle)
		})
	}
	if filter.Handle != "" {
		needle := strings.ToLower(filter.Handle)
		results = keep(results, func(info Info) bool {
			return info.ChannelHandle != "" && strings.Contains(strings.ToLower(info.ChannelHandle), needle)
		})
	}

	return results, nil
}

// describe builds an Info from path position, then overlays metadata.json.
func (s *Store) describe(dir string) Info {
	info := Info{
		Path:     dir,
		Title:    filepath.Base(dir),
		Channel:  "Unknown",
		Platform: "unknown",
	}
	if parent := filepath.Dir(dir); parent != "." {
		info.Channel = filepath.Base(parent)
		if grandparent := filepath.Dir(parent); grandparent != "." {
			info.Platform = filepath.Base(grandparent)
		}
	}

	meta, err := ReadMetadataMap(dir)
	if err != nil {
		return info
	}
	if duration, ok := MetaInt64(meta, "duration"); ok {
		info.Duration = &duration
	}
	if uploadDate, ok := MetaString(meta, "upload_date"); ok {
		info.UploadDate = uploadDate
	}
	if url, ok := MetaString(meta, "url"); ok {
		info.URL = url
	}
	if handle, ok := MetaString(meta, "uploader_id"); ok {
		info.ChannelHandle = handle
	}
	if channel, ok := MetaString(meta, "channel"); ok {
		info.Channel = channel
	}
	if title, ok := MetaString(meta, "title"); ok {
		info.Title = title
	}
	return info
}

func keep(infos []Info, pred func(Info) bool) []Info {
	filtered := infos[:0]
	for _, info := range infos {
		if pred(info) {
			filtered = append(filtered, info)
		}
	}
	return filtered
}
