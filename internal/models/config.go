package models

import (
	"strings"
	"time"
)

// Config represents the main configuration
type Config struct {
	Selector SelectorConfig `mapstructure:"selector"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// SelectorConfig contains the raw selector lists and storage settings
type SelectorConfig struct {
	Blacklist     string `mapstructure:"blacklist"`      // comma-separated compound selectors
	Whitelist     string `mapstructure:"whitelist"`      // takes precedence over blacklist
	StorageField  string `mapstructure:"storage_field"`  // empty = replace primary content
	ProtectedURLs string `mapstructure:"protected_urls"` // comma-separated exact URLs
	Trace         bool   `mapstructure:"trace"`
}

// HTTPConfig contains HTTP client settings
type HTTPConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Retries     int           `mapstructure:"retries"`
	RatePerHost float64       `mapstructure:"rate_per_host"` // requests per second, 0 = unlimited
}

// PipelineConfig contains document processing settings
type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	MaxDocumentsPerFile int  `mapstructure:"max_documents_per_file"`
	GenerateManifest    bool `mapstructure:"generate_manifest"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
	File   string `mapstructure:"file"`   // rotated with lumberjack when set
}

// HasSelectors returns true if either selector list is configured
func (c SelectorConfig) HasSelectors() bool {
	return strings.TrimSpace(c.Blacklist) != "" || strings.TrimSpace(c.Whitelist) != ""
}
