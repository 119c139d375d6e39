// Package storage owns the on-disk transcript layout, which is the
// authoritative record of every transcript. The index is always derived
// from this tree and can be rebuilt from it.
//
// Layout: <root>/<platform>/<channel>/<video>/ with transcript.md,
// transcript.json, metadata.json, and audio.mp3 inside. A directory is a
// valid transcript iff transcript.json exists; everything else degrades
// gracefully.
package storage
