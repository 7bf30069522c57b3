package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/kodeportal/internal/model"
)

func newDumpCmd(a *App) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:       "dump <projects|tasks|snippets>",
		Short:     "Print a stored collection as JSON",
		Long:      "Print a stored collection as JSON. A collection that was never saved prints the data a fresh start would seed.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"projects", "tasks", "snippets"},
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := model.ParseCollection(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(a)
			if err != nil {
				return err
			}
			log, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			collections, closer, err := openCollections(cfg, log)
			if err != nil {
				return err
			}
			defer closer.Close()

			raw, err := collections.Raw(cmd.Context(), coll, time.Now())
			if err != nil {
				return err
			}
			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, raw, "", "  "); err != nil {
					return fmt.Errorf("formatting %s: %w", coll, err)
				}
				raw = buf.Bytes()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	return cmd
}

func newResetCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored collection so the next start reseeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all projects, tasks and snippets; pass --yes to confirm")
			}
			cfg, err := loadConfig(a)
			if err != nil {
				return err
			}
			log, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			collections, closer, err := openCollections(cfg, log)
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := collections.Reset(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("backend", cfg.Storage.Backend).Msg("workspace reset")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "reset complete")
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func newInitCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.ConfigPath); err == nil && !force {
				return fmt.Errorf("config %s already exists; pass --force to overwrite", a.ConfigPath)
			}
			cfg, err := loadConfig(a)
			if err != nil {
				return err
			}
			if err := model.SaveConfig(a.ConfigPath, cfg); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.ConfigPath)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

// inspector is implemented by backends that can report what they hold.
type inspector interface {
	Keys(ctx context.Context) ([]string, error)
	SchemaVersion(ctx context.Context) (int, error)
}

func newInfoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the storage backend and the records it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a)
			if err != nil {
				return err
			}
			log, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			collections, closer, err := openCollections(cfg, log)
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "backend: %s\n", cfg.Storage.Backend)
			if cfg.Storage.Backend == model.BackendSQLite {
				fmt.Fprintf(out, "path: %s\n", cfg.Storage.Path)
			}

			in, ok := collections.Backend().(inspector)
			if !ok {
				_, err = fmt.Fprintln(out, "records: not listable for this backend")
				return err
			}
			version, err := in.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := in.Keys(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "schema version: %d\n", version)
			if len(keys) == 0 {
				_, err = fmt.Fprintln(out, "records: none (seed data on next start)")
				return err
			}
			_, err = fmt.Fprintf(out, "records: %s\n", strings.Join(keys, ", "))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "kodeportal %s\n", Version)
			return err
		},
	}
}
