package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ReadMetadataMap loads metadata.json from a leaf directory as a generic
// document. Returns an empty map when the file is absent so callers can
// treat metadata as best-effort enrichment.
func ReadMetadataMap(dir string) (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	meta := map[string]any{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// MetaString extracts a string field from a metadata document.
func MetaString(meta map[string]any, key string) (string, bool) {
	if value, ok := meta[key].(string); ok && value != "" {
		return value, true
	}
	return "", false
}

// MetaInt64 extracts a numeric field. JSON numbers decode as float64, so
// whole values are truncated toward zero.
func MetaInt64(meta map[string]any, key string) (int64, bool) {
	switch value := meta[key].(type) {
	case float64:
		return int64(value), true
	case json.Number:
		if parsed, err := value.Int64(); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
