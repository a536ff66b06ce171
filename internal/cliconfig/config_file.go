package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly types.
type FileConfig struct {
	File       string `toml:"file"`
	LogLevel   string `toml:"log_level"`
	Strict     *bool  `toml:"strict"`
	CreateDirs *bool  `toml:"create_dirs"`
	FileMode   string `toml:"file_mode"`
	Debounce   string `toml:"debounce"`
	Color      *bool  `toml:"color"`
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

// DefaultConfigPath returns ~/.datafile/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".datafile", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", fc.File, &cfg.File)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setMode("file-mode", fc.FileMode, &cfg.FileMode); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("strict", fc.Strict, &cfg.Strict)
	s.setBool("create-dirs", fc.CreateDirs, &cfg.CreateDirs)
	s.setBool("color", fc.Color, &cfg.Color)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
