package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Defaults are filter values applied when the matching flag is not given on
// the command line.
type Defaults struct {
	MinDurationSeconds int  `yaml:"min_duration_seconds"`
	DaysAgo            int  `yaml:"days_ago"`
	TodayOnly          bool `yaml:"today_only"`
	Limit              int  `yaml:"limit"`
}

// Config is the layered runtime configuration. Later layers win: the YAML
// config file, then a .env file in the working directory, then the process
// environment.
type Config struct {
	APIKey   string   `yaml:"api_key"`
	BaseURL  string   `yaml:"base_url"`
	LogLevel string   `yaml:"log_level"`
	Defaults Defaults `yaml:"defaults"`
}

// Load assembles the configuration. A missing config file or .env is not an
// error; the environment alone can carry everything.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
			util.LogDebugf("Loaded config file %s", path)
		case os.IsNotExist(err):
			util.LogDebugf("No config file at %s", path)
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already exported, which keeps the
	// process environment the strongest layer
	if err := godotenv.Load(); err == nil {
		util.LogDebug("Loaded .env file")
	}

	if key := os.Getenv("VAPI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if base := os.Getenv("VAPI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	return cfg, nil
}

// RequireAPIKey fails with setup instructions when no credential was found
// in any layer. The key itself is opaque; nothing beyond presence is
// checked before the first API call.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("VAPI API key not found. Please create a .env file with VAPI_API_KEY=your_api_key")
	}
	return nil
}
