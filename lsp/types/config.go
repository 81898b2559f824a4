package types

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"github.com/bmatcuk/doublestar/v4"
)

// ConfigKey is the key tickify settings live under in package.json and in
// client settings
const ConfigKey = "tickify"

// DefaultApplyTimeoutMs bounds how long the server waits for the client to
// answer a workspace/applyEdit request
const DefaultApplyTimeoutMs = 5000

// ServerConfig represents the server configuration
type ServerConfig struct {
	// Enabled turns automatic conversion on typing on or off.
	// Code actions and commands keep working when disabled.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Languages are the document language IDs conversion runs for
	Languages []string `json:"languages" yaml:"languages"`

	// Strategy is the boundary strategy: "bounded" or "line"
	Strategy string `json:"strategy" yaml:"strategy"`

	// Exclude holds doublestar globs matched against document paths
	// relative to the workspace root, e.g. "**/node_modules/**"
	Exclude []string `json:"exclude" yaml:"exclude"`

	// LogLevel is the minimum level written to stderr
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// ApplyTimeoutMs bounds the wait for a workspace/applyEdit response
	ApplyTimeoutMs int `json:"applyTimeoutMs" yaml:"applyTimeoutMs"`

	// QueueSize is the number of pending conversions kept before new ones
	// are dropped. Takes effect when the server starts.
	QueueSize int `json:"queueSize" yaml:"queueSize"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Enabled: true,
		Languages: []string{
			"javascript",
			"typescript",
			"javascriptreact",
			"typescriptreact",
		},
		Strategy:       string(pipeline.DefaultStrategy),
		Exclude:        []string{"**/node_modules/**"},
		LogLevel:       log.LevelInfo.String(),
		ApplyTimeoutMs: DefaultApplyTimeoutMs,
		QueueSize:      pipeline.DefaultQueueSize,
	}
}

// Validate reports every invalid field
func (c ServerConfig) Validate() error {
	var errs []error
	if _, err := pipeline.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}
	if c.ApplyTimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("applyTimeoutMs must not be negative, got %d", c.ApplyTimeoutMs))
	}
	if c.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("queueSize must not be negative, got %d", c.QueueSize))
	}
	return errors.Join(errs...)
}

// ParsedStrategy returns the configured strategy, or the default if invalid
func (c ServerConfig) ParsedStrategy() pipeline.Strategy {
	strategy, _ := pipeline.ParseStrategy(c.Strategy)
	return strategy
}

// ApplyTimeout returns the applyEdit timeout, falling back to the default
func (c ServerConfig) ApplyTimeout() time.Duration {
	if c.ApplyTimeoutMs <= 0 {
		return DefaultApplyTimeoutMs * time.Millisecond
	}
	return time.Duration(c.ApplyTimeoutMs) * time.Millisecond
}

// HandlesLanguage reports whether languageID is one of the configured languages
func (c ServerConfig) HandlesLanguage(languageID string) bool {
	return slices.Contains(c.Languages, languageID)
}

// ConfigOverlay is one configuration source. Nil fields leave the value
// below them untouched.
type ConfigOverlay struct {
	Enabled        *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Languages      []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	Strategy       *string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Exclude        []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	LogLevel       *string  `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	ApplyTimeoutMs *int     `json:"applyTimeoutMs,omitempty" yaml:"applyTimeoutMs,omitempty"`
	QueueSize      *int     `json:"queueSize,omitempty" yaml:"queueSize,omitempty"`
}

// Merge returns c with every field set in overlay replaced.
// A nil overlay returns c unchanged.
func (c ServerConfig) Merge(overlay *ConfigOverlay) ServerConfig {
	if overlay == nil {
		return c
	}
	if overlay.Enabled != nil {
		c.Enabled = *overlay.Enabled
	}
	if overlay.Languages != nil {
		c.Languages = slices.Clone(overlay.Languages)
	}
	if overlay.Strategy != nil {
		c.Strategy = *overlay.Strategy
	}
	if overlay.Exclude != nil {
		c.Exclude = slices.Clone(overlay.Exclude)
	}
	if overlay.LogLevel != nil {
		c.LogLevel = *overlay.LogLevel
	}
	if overlay.ApplyTimeoutMs != nil {
		c.ApplyTimeoutMs = *overlay.ApplyTimeoutMs
	}
	if overlay.QueueSize != nil {
		c.QueueSize = *overlay.QueueSize
	}
	return c
}
