package serverconfig

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bft-labs/datafile/pkg/datafile"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Admins == nil {
		t.Error("Admins should be an empty list so the file shows [] instead of null")
	}
	if cfg.TLS.Enabled {
		t.Error("TLS should be disabled by default")
	}
}

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{host: "0.0.0.0", port: 8080, want: "0.0.0.0:8080"},
		{host: "", port: 80, want: ":80"},
		{host: "::1", port: 443, want: "[::1]:443"},
	}

	for _, tt := range tests {
		cfg := Config{Host: tt.host, Port: tt.port}
		if got := cfg.Address(); got != tt.want {
			t.Errorf("Address() = %q, want %q", got, tt.want)
		}
	}
}

func TestCodec_FirstRunAndManagedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFileName)

	_, err := datafile.Load(ctx, Codec(), path, true)
	if !errors.Is(err, datafile.ErrNoFileFoundCreatedDefault) {
		t.Fatalf("Load() error = %v, want ErrNoFileFoundCreatedDefault", err)
	}

	managed := `# Ansible managed: server.json.j2
{
  "name": "edge-1",
  "host": "10.0.0.5",
  "port": 9443,
  "data_dir": "/var/lib/server",
  "log_level": "debug",
  "max_connections": 1024,
  "admins": ["alice", "bob"],
# certificates are provisioned separately
  "tls": {"enabled": true, "cert_file": "/etc/ssl/edge.crt", "key_file": "/etc/ssl/edge.key"}
}
`
	if err := os.WriteFile(path, []byte(managed), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := datafile.Load(ctx, Codec(), path, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Name:           "edge-1",
		Host:           "10.0.0.5",
		Port:           9443,
		DataDir:        "/var/lib/server",
		LogLevel:       "debug",
		MaxConnections: 1024,
		Admins:         []string{"alice", "bob"},
		TLS:            TLS{Enabled: true, CertFile: "/etc/ssl/edge.crt", KeyFile: "/etc/ssl/edge.key"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestCodec_SnakeCaseKeys(t *testing.T) {
	b, err := Codec().Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"name", "host", "port", "data_dir", "log_level", "max_connections", "admins", "tls"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("encoded config missing key %q", key)
		}
	}
}
