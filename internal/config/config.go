package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"scribe/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// apiKeyEnv is the environment variable holding the AssemblyAI credential.
const apiKeyEnv = "ASSEMBLYAI_API_KEY"

// dataDirEnv overrides the configured data directory when set.
const dataDirEnv = "SCRIBE_DATA_DIR"

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// AssemblyAI contains settings for the transcription service.
type AssemblyAI struct {
	APIKey string `toml:"api_key"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `toml:"base_url"`
	// Language is an optional language hint passed to the job API
	// (BCP 47; normalized to its base code).
	Language string `toml:"language"`
	// TimeoutSeconds caps the wall-clock time of one transcription job.
	// Zero disables the cap and polling continues until a terminal state.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Downloader contains settings for the external media downloader.
type Downloader struct {
	Binary             string `toml:"binary"`
	CookiesFile        string `toml:"cookies_file"`
	CookiesFromBrowser string `toml:"cookies_from_browser"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe.
type Config struct {
	Paths      Paths      `toml:"paths"`
	AssemblyAI AssemblyAI `toml:"assemblyai"`
	Downloader Downloader `toml:"downloader"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file.
// A missing file yields defaults. Returns the resolved path and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	cfg.loadEnvFile()

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// loadEnvFile seeds the process environment from <data>/.env when present,
// falling back to a .env in the working directory. Existing environment
// variables always win.
func (c *Config) loadEnvFile() {
	envPath := c.EnvFilePath()
	if _, err := os.Stat(envPath); err == nil {
		_ = godotenv.Load(envPath)
		return
	}
	_ = godotenv.Load()
}

// TranscriptsDir is the root of the durable transcript tree.
func (c *Config) TranscriptsDir() string {
	return filepath.Join(c.Paths.DataDir, "transcripts")
}

// DownloadsDir holds in-flight audio downloads before they are moved into
// the transcript tree.
func (c *Config) DownloadsDir() string {
	return filepath.Join(c.Paths.DataDir, ".downloads")
}

// DatabasePath is the embedded search index location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "transcripts.db")
}

// EnvFilePath is where `scribe init` stores the credential.
func (c *Config) EnvFilePath() string {
	return filepath.Join(c.Paths.DataDir, ".env")
}

// LockFilePath guards mutating commands against concurrent invocations.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.DataDir, "scribe.lock")
}

// APIKey resolves the AssemblyAI credential: environment first, then the
// TOML field. Empty when unconfigured.
func (c *Config) APIKey() string {
	if key := strings.TrimSpace(os.Getenv(apiKeyEnv)); key != "" {
		return key
	}
	return strings.TrimSpace(c.AssemblyAI.APIKey)
}

// RequireAPIKey returns a configuration error when no credential is
// available. Called before any network traffic to the transcription
// service.
func (c *Config) RequireAPIKey() error {
	if c.APIKey() == "" {
		return services.Wrap(services.ErrConfiguration, "config", "",
			fmt.Sprintf("%s not set; run `scribe init` to configure", apiKeyEnv), nil)
	}
	return nil
}

// EnsureDirectories creates the directories scribe needs to operate.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.TranscriptsDir(), c.DownloadsDir(), c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
