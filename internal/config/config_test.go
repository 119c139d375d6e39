package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("SCRIBE_DATA_DIR", t.TempDir())

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !strings.HasSuffix(cfg.TranscriptsDir(), "transcripts") {
		t.Fatalf("unexpected transcripts dir: %s", cfg.TranscriptsDir())
	}
	if filepath.Dir(cfg.DatabasePath()) != cfg.Paths.DataDir {
		t.Fatalf("database path %s not under data dir %s", cfg.DatabasePath(), cfg.Paths.DataDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCRIBE_DATA_DIR", "")
	os.Unsetenv("SCRIBE_DATA_DIR")

	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `"

[assemblyai]
language = "en-US"
timeout_seconds = 600

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected to load %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected format: %s", cfg.Logging.Format)
	}
	if cfg.AssemblyAI.Language != "en" {
		t.Fatalf("expected language normalized to base code, got %q", cfg.AssemblyAI.Language)
	}
	if cfg.AssemblyAI.TimeoutSeconds != 600 {
		t.Fatalf("unexpected timeout: %d", cfg.AssemblyAI.TimeoutSeconds)
	}
}

func TestValidateRejectsBadLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.AssemblyAI.Language = "no-such-tag-!!"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for bad language tag")
	}
}

func TestAPIKeyEnvWins(t *testing.T) {
	cfg := config.Default()
	cfg.AssemblyAI.APIKey = "from-toml"
	t.Setenv("ASSEMBLYAI_API_KEY", "from-env")
	if got := cfg.APIKey(); got != "from-env" {
		t.Fatalf("expected env credential, got %q", got)
	}

	os.Unsetenv("ASSEMBLYAI_API_KEY")
	if got := cfg.APIKey(); got != "from-toml" {
		t.Fatalf("expected toml fallback, got %q", got)
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := config.Default()
	os.Unsetenv("ASSEMBLYAI_API_KEY")
	if err := cfg.RequireAPIKey(); err == nil {
		t.Fatal("expected error without credential")
	}
	t.Setenv("ASSEMBLYAI_API_KEY", "k")
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.TranscriptsDir(), cfg.DownloadsDir(), cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
