// Package sheetfeed fetches spreadsheet tabs and normalizes their rows into records.
package sheetfeed

import (
	"fmt"
	"os"
	"time"

	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/parser"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the spreadsheets endpoint of the Sheets v4 API.
const DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// DefaultRange is the A1 range requested for each tab.
const DefaultRange = "A1:Z"

// Config configures a Client.
type Config struct {
	// SheetID is the spreadsheet identifier.
	SheetID string `yaml:"sheet_id"`
	// APIKey is the key sent as the "key" query parameter.
	APIKey string `yaml:"api_key"`
	// BaseURL is the spreadsheets endpoint, without a trailing slash.
	BaseURL string `yaml:"base_url"`
	// Range is the A1 range requested for each tab (e.g. "A1:Z").
	Range string `yaml:"range"`
	// Timeout bounds a single request (e.g. "10s"). Empty means no
	// internal deadline; callers impose one through the context.
	Timeout string `yaml:"timeout,omitempty"`
}

// DefaultConfig returns a Config with the public endpoint and default range.
// SheetID and APIKey are left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Range:   DefaultRange,
	}
}

// LoadConfig reads a YAML config file and applies environment overrides.
// A missing file is not an error; defaults are used instead.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// The SHEETFEED_ prefixed names take precedence over the short ones.
func (c *Config) applyEnvOverrides() {
	if v := firstEnv("SHEETFEED_SHEET_ID", "SHEET_ID"); v != "" {
		c.SheetID = v
	}
	if v := firstEnv("SHEETFEED_API_KEY", "GOOGLE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("SHEETFEED_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the config can produce a request.
func (c Config) Validate() error {
	if c.SheetID == "" {
		return ErrMissingSheetID
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return &ConfigError{Field: "base_url", Err: fmt.Errorf("must not be empty")}
	}
	rng, err := parser.ParseRange(c.Range)
	if err != nil {
		return &ConfigError{Field: "range", Err: err}
	}
	if rng.Sheet != "" {
		return &ConfigError{Field: "range", Err: fmt.Errorf("%q must not name a tab; the tab is prefixed per request", c.Range)}
	}
	if _, err := c.RequestTimeout(); err != nil {
		return &ConfigError{Field: "timeout", Err: err}
	}
	return nil
}

// RequestTimeout parses Timeout. An empty value yields 0 (no timeout).
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", c.Timeout)
	}
	return d, nil
}
