package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/datafile/internal/cliconfig"
	"github.com/bft-labs/datafile/internal/serverconfig"
	"github.com/bft-labs/datafile/pkg/datafile"
	logpkg "github.com/bft-labs/datafile/pkg/log"
)

const longHelp = `Manage the server configuration file.

The file is JSON. Lines starting with '#' are ignored when reading, so
configuration management headers can stay in place. When the file does not
exist yet it is created with default values.

Settings are read from $HOME/.datafile/config.toml, then .env, then
DATAFILE_* environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  datafile init --file /etc/server/server.json
  datafile show --file /etc/server/server.json --color
  datafile get tls.cert_file
  datafile import ./rendered.json --file /etc/server/server.json
  datafile watch --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return datafile.Version
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

func (a *app) file() *datafile.File[serverconfig.Config] {
	logger := logpkg.NewZerologAdapterWithLogger(a.log)
	return datafile.New(a.cfg.File, serverconfig.Codec(), a.cfg.FileOptions(logger)...)
}

// resolve layers config file, .env, environment and flags, in that order of precedence.
func (a *app) resolve(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.LoadDotEnv(cliconfig.DotEnvFile); err != nil {
		return fmt.Errorf("load %s: %w", cliconfig.DotEnvFile, err)
	}
	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, err := logpkg.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = a.log.Level(level)
	a.log.Debug().Interface("config", a.cfg).Str("config_file", cfgFile).Msg("configuration")
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "datafile",
		Short:             "Manage the server configuration file",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.resolve(cmd) },
	}

	// Flags
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.datafile/config.toml)")
	pf.StringVarP(&a.cfg.File, "file", "f", a.cfg.File, "server configuration file")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&a.cfg.Strict, "strict", a.cfg.Strict, "fail when the file had to be created")
	pf.BoolVar(&a.cfg.CreateDirs, "create-dirs", a.cfg.CreateDirs, "create missing parent directories")
	pf.Var(cliconfig.FileModeValue{Mode: &a.cfg.FileMode}, "file-mode", "permissions for newly created files (octal)")
	pf.DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period before reloading a changed file")
	pf.BoolVar(&a.cfg.Color, "color", a.cfg.Color, "colorize JSON output")

	root.AddCommand(
		newInitCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
		newGetCmd(a),
		newImportCmd(a),
		newWatchCmd(a),
	)
	return root
}

func main() {
	a := &app{
		cfg: cliconfig.DefaultConfig(),
		log: logpkg.NewConsoleLogger(os.Stderr, zerolog.InfoLevel),
	}
	root := newRootCmd(a)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, datafile.ErrNoFileFoundCreatedDefault) {
			a.log.Warn().Str("path", a.cfg.File).Msg("created default configuration; review it and run again")
		} else {
			a.log.Error().Err(err).Msg("datafile")
		}
		stop()
		os.Exit(1)
	}
}
