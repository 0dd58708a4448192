package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	InputDir       string `toml:"input_dir"`
	JSONDir        string `toml:"json_dir"`
	OutputDir      string `toml:"output_dir"`
	Ext            string `toml:"ext"`
	LogLevel       string `toml:"log_level"`
	FilterJapanese *bool  `toml:"filter_japanese"`
	Strict         *bool  `toml:"strict"`
	Debounce       string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.scbtext/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".scbtext", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-dir", fc.InputDir, &cfg.InputDir)
	s.setString("json-dir", fc.JSONDir, &cfg.JSONDir)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("ext", fc.Ext, &cfg.Ext)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("filter-japanese", fc.FilterJapanese, &cfg.FilterJapanese)
	s.setBool("strict", fc.Strict, &cfg.Strict)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
