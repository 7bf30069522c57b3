// Package cli wires configuration, storage and logging together and
// exposes them as cobra commands. The root command starts the TUI.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nhle/kodeportal/internal/app"
	"github.com/nhle/kodeportal/internal/credential"
	"github.com/nhle/kodeportal/internal/model"
	"github.com/nhle/kodeportal/internal/store"
	"github.com/nhle/kodeportal/internal/workspace"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// App carries the persistent flag values shared by every command.
type App struct {
	ConfigPath string
	DBPath     string
	Backend    string
	LogLevel   string
}

// NewRootCmd builds the kodeportal command tree. Run without a subcommand
// it starts the TUI.
func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "kodeportal",
		Short:        "KodePortal: a personal developer dashboard in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  kodeportal

  # Print the stored tasks as JSON
  kodeportal dump tasks --pretty

  # Drop every stored collection so the next start reseeds
  kodeportal reset --yes
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), a)
		},
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", model.DefaultConfigPath(), "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&a.DBPath, "db", "", "SQLite database path (overrides storage.path)")
	cmd.PersistentFlags().StringVar(&a.Backend, "backend", "", "Storage backend: sqlite or keyring (overrides storage.backend)")
	cmd.PersistentFlags().StringVar(&a.LogLevel, "log-level", "", "Log level (overrides log.level)")

	cmd.AddCommand(newDumpCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newInfoCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(a *App) (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(a.ConfigPath)
	if err != nil {
		return nil, err
	}
	if a.DBPath != "" {
		cfg.Storage.Path = a.DBPath
	}
	if a.Backend != "" {
		switch a.Backend {
		case model.BackendSQLite, model.BackendKeyring:
			cfg.Storage.Backend = a.Backend
		default:
			return nil, fmt.Errorf("unknown storage backend %q", a.Backend)
		}
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	return cfg, nil
}

// openCollections opens the configured backend. The returned closer is
// never nil.
func openCollections(cfg *model.AppConfig, log zerolog.Logger) (*store.Collections, io.Closer, error) {
	switch cfg.Storage.Backend {
	case model.BackendKeyring:
		ring, err := credential.Open(cfg.Keyring)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("service", cfg.Keyring.Service).Msg("using keyring backend")
		return store.NewCollections(credential.NewBackend(ring), log), nopCloser{}, nil
	default:
		s, err := store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", cfg.Storage.Path).Msg("using sqlite backend")
		return store.NewCollections(s, log), s, nil
	}
}

func runTUI(ctx context.Context, a *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(a)
	if err != nil {
		return err
	}

	log, logFile, err := app.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logFile.Close()

	coll, closer, err := openCollections(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("opening storage failed")
		return err
	}
	defer closer.Close()

	state, err := workspace.Load(ctx, coll, log)
	if err != nil {
		log.Error().Err(err).Msg("loading workspace failed")
		return err
	}

	m := app.New(state, app.Options{
		MailURL:  cfg.UI.MailURL,
		AckDelay: time.Duration(cfg.UI.CopyAckMillis) * time.Millisecond,
		Log:      log,
	})
	log.Info().Str("version", Version).Str("backend", cfg.Storage.Backend).Msg("starting tui")

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// commandLogger logs human-readable lines to the command's stderr.
func commandLogger(cmd *cobra.Command, cfg *model.AppConfig) (zerolog.Logger, error) {
	return app.NewConsoleLogger(cmd.ErrOrStderr(), cfg.Log.Level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
