package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all values",
			fileConfig: FileConfig{
				File:       "/etc/server/server.json",
				LogLevel:   "debug",
				Strict:     &trueVal,
				CreateDirs: &trueVal,
				FileMode:   "0600",
				Debounce:   "250ms",
				Color:      &falseVal,
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				File:       "/etc/server/server.json",
				LogLevel:   "debug",
				Strict:     true,
				CreateDirs: true,
				FileMode:   0o600,
				Debounce:   250 * time.Millisecond,
				Color:      false,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				File:   "/from/file.json",
				Strict: &trueVal,
			},
			changed: map[string]bool{"file": true},
			initial: Config{File: "/from/flag.json"},
			expected: Config{
				File:   "/from/flag.json", // unchanged because flag was set
				Strict: true,
			},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{Debounce: "soon"},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			wantErr:    true,
		},
		{
			name:       "invalid mode",
			fileConfig: FileConfig{FileMode: "rwx"},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
file = "/srv/app/server.json"
log_level = "warn"
strict = true
file_mode = "0640"
debounce = "1s"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.File != "/srv/app/server.json" {
		t.Errorf("File = %v, want /srv/app/server.json", fc.File)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}
	if fc.Strict == nil || !*fc.Strict {
		t.Errorf("Strict = %v, want true", fc.Strict)
	}
	if fc.CreateDirs != nil {
		t.Errorf("CreateDirs = %v, want unset", fc.CreateDirs)
	}
	if fc.FileMode != "0640" {
		t.Errorf("FileMode = %v, want 0640", fc.FileMode)
	}
	if fc.Debounce != "1s" {
		t.Errorf("Debounce = %v, want 1s", fc.Debounce)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	if err := os.WriteFile(configPath, []byte("file = \"a\"\nthis is not valid toml\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".datafile") {
		t.Errorf("DefaultConfigPath() = %v, should contain .datafile", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existing, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(existing) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "missing.txt")) {
		t.Error("FileExists() = true for missing file")
	}
}
