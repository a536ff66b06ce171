// Package serverconfig defines the server configuration record persisted with datafile.
package serverconfig

import (
	"net"
	"strconv"

	"github.com/bft-labs/datafile/pkg/datafile"
)

// DefaultFileName is the conventional name of the server configuration file.
const DefaultFileName = "server.json"

// Config is the server configuration as stored on disk.
type Config struct {
	Name           string   `json:"name"`
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	DataDir        string   `json:"data_dir"`
	LogLevel       string   `json:"log_level"`
	MaxConnections int      `json:"max_connections"`
	Admins         []string `json:"admins"`
	TLS            TLS      `json:"tls"`
}

// TLS holds the listener certificate settings.
type TLS struct {
	Enabled  bool   `json:"enabled"`
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		Name:           "server",
		Host:           "0.0.0.0",
		Port:           8080,
		DataDir:        "data",
		LogLevel:       "info",
		MaxConnections: 256,
		Admins:         []string{},
	}
}

// Codec returns the datafile codec for Config.
func Codec() *datafile.JSONCodec[Config] {
	return datafile.JSON(Default)
}

// Address returns the listen address in host:port form.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
