package cliconfig

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Defaults mirror the directory layout the legacy tool used.
const (
	DefaultInputDir  = "input_files"
	DefaultJSONDir   = "json_files"
	DefaultOutputDir = "output_files"
	DefaultExt       = ".scb"
)

// Config holds CLI configuration for scbtext.
type Config struct {
	InputDir  string
	JSONDir   string
	OutputDir string

	Ext      string
	LogLevel string

	FilterJapanese bool
	Strict         bool

	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputDir:  DefaultInputDir,
		JSONDir:   DefaultJSONDir,
		OutputDir: DefaultOutputDir,
		Ext:       DefaultExt,
		LogLevel:  "info",
		Debounce:  500 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalizes paths.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input-dir is required")
	}
	if c.JSONDir == "" {
		return fmt.Errorf("json-dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output-dir is required")
	}
	c.InputDir = filepath.Clean(c.InputDir)
	c.JSONDir = filepath.Clean(c.JSONDir)
	c.OutputDir = filepath.Clean(c.OutputDir)

	if c.Ext == "" {
		c.Ext = DefaultExt
	}
	if !strings.HasPrefix(c.Ext, ".") {
		c.Ext = "." + c.Ext
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
