package cliconfig

import (
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/bft-labs/datafile/internal/serverconfig"
	"github.com/bft-labs/datafile/pkg/datafile"
	"github.com/bft-labs/datafile/pkg/log"
)

// Config holds CLI configuration for datafile.
type Config struct {
	File     string
	LogLevel string

	Strict     bool
	CreateDirs bool
	FileMode   fs.FileMode
	Debounce   time.Duration
	Color      bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		File:     serverconfig.DefaultFileName,
		LogLevel: "info",
		FileMode: datafile.DefaultFileMode,
		Debounce: datafile.DefaultDebounce,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("file is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.FileMode&^fs.ModePerm != 0 {
		return fmt.Errorf("file mode %#o has bits outside the permission range", uint32(c.FileMode))
	}
	if c.FileMode == 0 {
		return fmt.Errorf("file mode must not be 0")
	}
	return nil
}

// FileOptions translates the configuration into datafile options.
func (c *Config) FileOptions(logger log.Logger) []datafile.Option {
	opts := []datafile.Option{
		datafile.WithLogger(logger),
		datafile.WithFileMode(c.FileMode),
		datafile.WithDebounce(c.Debounce),
	}
	if c.CreateDirs {
		opts = append(opts, datafile.WithCreateDirs(0o755))
	}
	return opts
}

// configSetter applies values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

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

// setMode parses an octal permission string such as "0600".
func (s *configSetter) setMode(flag, value string, dst *fs.FileMode) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	m, err := ParseFileMode(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = m
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// ParseFileMode parses an octal permission string like "644" or "0o600".
func ParseFileMode(s string) (fs.FileMode, error) {
	if len(s) > 2 && (s[:2] == "0o" || s[:2] == "0O") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v > uint64(fs.ModePerm) {
		return 0, fmt.Errorf("mode %s exceeds %#o", s, uint32(fs.ModePerm))
	}
	return fs.FileMode(v), nil
}

// FileModeValue adapts an fs.FileMode to pflag.Value, printing and parsing octal.
type FileModeValue struct {
	Mode *fs.FileMode
}

func (v FileModeValue) String() string {
	if v.Mode == nil {
		return ""
	}
	return fmt.Sprintf("%04o", uint32(*v.Mode))
}

func (v FileModeValue) Set(s string) error {
	m, err := ParseFileMode(s)
	if err != nil {
		return err
	}
	*v.Mode = m
	return nil
}

func (v FileModeValue) Type() string { return "mode" }
