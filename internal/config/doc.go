// Package config loads, normalizes, and validates the TOML configuration.
//
// The data directory is resolved once at load time and handed to every
// component explicitly; no package reads it from ambient globals. The
// AssemblyAI credential is sourced from the environment (optionally seeded
// from <data>/.env) with a TOML fallback, and is only required by commands
// that talk to the transcription service.
package config
