package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable. Credential presence is
// checked separately by RequireAPIKey so read-only commands work without
// one.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	if c.AssemblyAI.Language != "" {
		tag, err := language.Parse(c.AssemblyAI.Language)
		if err != nil {
			return fmt.Errorf("assemblyai.language: %q is not a valid language tag: %w", c.AssemblyAI.Language, err)
		}
		base, _ := tag.Base()
		c.AssemblyAI.Language = base.String()
	}
	return nil
}
