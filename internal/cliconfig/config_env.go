package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SCBTEXT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", os.Getenv("SCBTEXT_INPUT_DIR"), &cfg.InputDir)
	s.setString("json-dir", os.Getenv("SCBTEXT_JSON_DIR"), &cfg.JSONDir)
	s.setString("output-dir", os.Getenv("SCBTEXT_OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("ext", os.Getenv("SCBTEXT_EXT"), &cfg.Ext)
	s.setString("log-level", os.Getenv("SCBTEXT_LOG_LEVEL"), &cfg.LogLevel)

	s.setBoolFromString("filter-japanese", os.Getenv("SCBTEXT_FILTER_JAPANESE"), &cfg.FilterJapanese)
	s.setBoolFromString("strict", os.Getenv("SCBTEXT_STRICT"), &cfg.Strict)

	return s.setDuration("debounce", os.Getenv("SCBTEXT_DEBOUNCE"), &cfg.Debounce)
}
