package storage

import (
	"os"
	"path/filepath"
)

// WalkUnits walks root depth-first and invokes fn once per leaf transcript
// directory. Recursion stops at a leaf: a directory directly containing
// transcript.json is never descended into. Unreadable directories are
// skipped rather than aborting the walk; an error from fn stops it.
//
// Both listing and reindexing use this walker so they agree on what counts
// as a transcript.
func WalkUnits(root string, fn func(dir string) error) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	if _, err := os.Stat(filepath.Join(root, TranscriptJSONFile)); err == nil {
		return fn(root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := WalkUnits(filepath.Join(root, entry.Name()), fn); err != nil {
			return err
		}
	}
	return nil
}
