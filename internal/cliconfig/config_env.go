package cliconfig

import (
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory before the environment is applied.
const DotEnvFile = ".env"

// LoadDotEnv exports the variables in path into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if !FileExists(path) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnvConfig applies configuration from environment variables (DATAFILE_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", os.Getenv("DATAFILE_FILE"), &cfg.File)
	s.setString("log-level", os.Getenv("DATAFILE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setMode("file-mode", os.Getenv("DATAFILE_FILE_MODE"), &cfg.FileMode); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("DATAFILE_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("strict", os.Getenv("DATAFILE_STRICT"), &cfg.Strict)
	s.setBoolFromString("create-dirs", os.Getenv("DATAFILE_CREATE_DIRS"), &cfg.CreateDirs)
	s.setBoolFromString("color", os.Getenv("DATAFILE_COLOR"), &cfg.Color)

	return nil
}
