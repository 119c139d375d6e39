package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/index"
	"scribe/internal/logging"
	"scribe/internal/services/assemblyai"
	"scribe/internal/services/ytdlp"
	"scribe/internal/storage"
)

// commandContext carries lazily-initialized shared state across
// subcommands. Config and logger are built once on first use.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openIndex opens the index database for the configured data dir. The
// caller owns the returned store and must close it.
func (c *commandContext) openIndex() (*index.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := index.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return store, nil
}

func (c *commandContext) fileStore() (*storage.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return storage.NewStore(cfg.TranscriptsDir()), nil
}

func (c *commandContext) downloader() (*ytdlp.Downloader, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return ytdlp.New(cfg.Downloader.Binary, cfg.Downloader.CookiesFile, cfg.Downloader.CookiesFromBrowser), nil
}

func (c *commandContext) transcriber() (*assemblyai.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	opts := []assemblyai.Option{}
	if cfg.AssemblyAI.BaseURL != "" {
		opts = append(opts, assemblyai.WithBaseURL(cfg.AssemblyAI.BaseURL))
	}
	return assemblyai.NewClient(assemblyai.Config{
		APIKey:   cfg.APIKey(),
		Language: cfg.AssemblyAI.Language,
		Timeout:  time.Duration(cfg.AssemblyAI.TimeoutSeconds) * time.Second,
	}, opts...)
}

// withLock serializes mutating commands per data dir. A held lock means
// another scribe invocation is mid-write.
func (c *commandContext) withLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockFilePath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another scribe instance is already writing; retry when it finishes")
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
