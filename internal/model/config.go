package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names accepted by StorageConfig.Backend.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// StorageConfig selects where the persisted collections live.
type StorageConfig struct {
	// Backend is "sqlite" (default) or "keyring".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file used by the sqlite backend.
	Path string `mapstructure:"path" yaml:"path"`
}

// KeyringConfig holds settings for the OS keyring backend.
type KeyringConfig struct {
	Service string `mapstructure:"service" yaml:"service"`
	FileDir string `mapstructure:"file_dir" yaml:"file_dir"`
}

// LogConfig controls the file logger. The TUI owns the terminal, so
// logs never go to stdout while it runs.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// UIConfig holds rendering and interaction preferences.
type UIConfig struct {
	// MailURL is opened by the top bar mail action.
	MailURL string `mapstructure:"mail_url" yaml:"mail_url"`

	// CopyAckMillis is how long a "copied" acknowledgment stays visible.
	CopyAckMillis int `mapstructure:"copy_ack_ms" yaml:"copy_ack_ms"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Keyring KeyringConfig `mapstructure:"keyring" yaml:"keyring"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
}

// ConfigDir returns ~/.config/kodeportal, or the working directory when
// the home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "kodeportal")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/kodeportal/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "kodeportal.db"),
		},
		Keyring: KeyringConfig{
			Service: "kodeportal",
			FileDir: filepath.Join(dir, "keyring"),
		},
		Log: LogConfig{
			File:  filepath.Join(dir, "kodeportal.log"),
			Level: "info",
		},
		UI: UIConfig{
			MailURL:       "https://mail.google.com/",
			CopyAckMillis: 2000,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
// Environment variables prefixed with KODEPORTAL_ override file values
// (KODEPORTAL_STORAGE_PATH, KODEPORTAL_LOG_LEVEL, ...).
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("kodeportal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.backend", def.Storage.Backend)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("keyring.service", def.Keyring.Service)
	v.SetDefault("keyring.file_dir", def.Keyring.FileDir)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("ui.mail_url", def.UI.MailURL)
	v.SetDefault("ui.copy_ack_ms", def.UI.CopyAckMillis)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendKeyring:
	default:
		return nil, fmt.Errorf("config %s: unknown storage backend %q", path, cfg.Storage.Backend)
	}
	if cfg.UI.CopyAckMillis <= 0 {
		cfg.UI.CopyAckMillis = def.UI.CopyAckMillis
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("keyring", cfg.Keyring)
	v.Set("log", cfg.Log)
	v.Set("ui", cfg.UI)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
