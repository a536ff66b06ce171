package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/bft-labs/datafile/internal/serverconfig"
	"github.com/bft-labs/datafile/pkg/datafile"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.file()
			exists, err := f.Exists()
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", f.Path())
			}
			if err := f.WriteDefault(cmd.Context()); err != nil {
				return err
			}
			a.log.Info().Str("path", f.Path()).Bool("overwritten", exists).Msg("wrote default configuration")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration, creating it if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.file().Load(cmd.Context(), a.cfg.Strict)
			if err != nil {
				return err
			}
			b, err := serverconfig.Codec().Marshal(cfg)
			if err != nil {
				return err
			}
			if compact {
				b = pretty.Ugly(b)
			}
			if a.cfg.Color {
				b = pretty.Color(b, pretty.TerminalStyle)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print on a single line")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configuration file decodes",
		Long: `Load the file in strict mode. A missing file is created with defaults and
reported as a failure so that it can be reviewed before use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.file().Load(cmd.Context(), true)
			if err != nil {
				if datafile.IsDecodeError(err) {
					return fmt.Errorf("invalid configuration: %w", err)
				}
				return err
			}
			a.log.Info().Str("path", a.cfg.File).Str("address", cfg.Address()).Msg("configuration ok")
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print a single value, e.g. tls.cert_file or admins.0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.file().Load(cmd.Context(), a.cfg.Strict)
			if err != nil {
				return err
			}
			b, err := serverconfig.Codec().Marshal(cfg)
			if err != nil {
				return err
			}

			res := gjson.GetBytes(b, args[0])
			if !res.Exists() {
				return fmt.Errorf("no value at %q", args[0])
			}
			if res.Type == gjson.String {
				fmt.Fprintln(cmd.OutOrStdout(), res.Str)
				return nil
			}
			out := []byte(res.Raw)
			if a.cfg.Color {
				out = pretty.Color(pretty.Pretty(out), pretty.TerminalStyle)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <src>",
		Short: "Validate a rendered file and save it as the configuration",
		Long: `Read src, ignoring '#' comment lines, and write it to the configuration
file in canonical form. src must exist; it is never created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			cfg, err := datafile.Read(cmd.Context(), serverconfig.Codec(), src)
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("import source %s: %w", src, err)
			}
			if err != nil {
				return err
			}

			f := a.file()
			if err := f.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			a.log.Info().Str("src", src).Str("path", f.Path()).Msg("imported configuration")
			return nil
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log every change to the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := a.file()

			cfg, err := f.Load(ctx, a.cfg.Strict)
			if err != nil {
				return err
			}
			a.log.Info().Str("path", f.Path()).Str("address", cfg.Address()).Msg("watching configuration")

			err = f.Watch(ctx, func(cfg serverconfig.Config, err error) {
				if err != nil {
					a.log.Error().Err(err).Str("path", f.Path()).Msg("reload failed")
					return
				}
				a.log.Info().
					Str("path", f.Path()).
					Str("name", cfg.Name).
					Str("address", cfg.Address()).
					Bool("tls", cfg.TLS.Enabled).
					Msg("configuration reloaded")
			})
			if err != nil {
				return err
			}
			a.log.Info().Msg("stopped watching")
			return nil
		},
	}
}
