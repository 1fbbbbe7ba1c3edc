// ABOUTME: liftlog configuration management with backend selection.
// ABOUTME: Loads settings via viper (file, LIFTLOG_* env, .env) and opens the storage backend.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harperreed/liftlog/internal/logging"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Backend names accepted by Config.Backend.
const (
	BackendAuto   = "auto"
	BackendSQLite = "sqlite"
	BackendKV     = "kv"
)

// Keys lists the settings that can be changed with Set.
var Keys = []string{"backend", "data_dir", "kv_sync", "charm_host", "log_level", "log_file"}

// Config stores liftlog configuration.
type Config struct {
	// Backend selects storage: "auto" (default), "sqlite", or "kv".
	// auto opens SQLite and falls back to the key-value store if that fails.
	Backend string `mapstructure:"backend" json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts liftlog.db
	// here and the local key-value store uses the kv/ folder.
	// Supports ~ expansion. Defaults to ~/.local/share/liftlog.
	DataDir string `mapstructure:"data_dir" json:"data_dir,omitempty"`

	// KVSync stores key-value data in Charm KV, synced to Charm Cloud.
	KVSync bool `mapstructure:"kv_sync" json:"kv_sync,omitempty"`

	// CharmHost overrides the Charm server used when KVSync is on.
	CharmHost string `mapstructure:"charm_host" json:"charm_host,omitempty"`

	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`
	LogFile  string `mapstructure:"log_file" json:"log_file,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "auto".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendAuto
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogFile returns the log file path with ~ expanded.
func (c *Config) GetLogFile() string {
	if c.LogFile == "" {
		return logging.DefaultLogFile()
	}
	return ExpandPath(c.LogFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens and initializes the configured backend.
func (c *Config) OpenStorage(ctx context.Context) (storage.Backend, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return c.openSQLite(ctx)
	case BackendKV:
		return c.openKV(ctx)
	case BackendAuto:
		db, sqliteErr := c.openSQLite(ctx)
		if sqliteErr == nil {
			return db, nil
		}
		log.WithError(sqliteErr).Warn("sqlite unavailable, falling back to key-value store; exercise detail will not be saved")

		kv, kvErr := c.openKV(ctx)
		if kvErr != nil {
			return nil, fmt.Errorf("open storage: %w", multierr.Combine(sqliteErr, kvErr))
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

func (c *Config) openSQLite(ctx context.Context) (*storage.DB, error) {
	return storage.Open(ctx, filepath.Join(c.GetDataDir(), "liftlog.db"))
}

func (c *Config) openKV(ctx context.Context) (*storage.KVStore, error) {
	if c.KVSync {
		return storage.OpenSyncedKV(ctx, c.CharmHost)
	}
	return storage.OpenKV(ctx, filepath.Join(c.GetDataDir(), "kv"))
}

// Set validates and assigns one setting by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		switch value {
		case BackendAuto, BackendSQLite, BackendKV:
			c.Backend = value
		default:
			return fmt.Errorf("invalid backend %q (want auto, sqlite, or kv)", value)
		}
	case "data_dir":
		c.DataDir = value
	case "kv_sync":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid kv_sync %q: %w", value, err)
		}
		c.KVSync = b
	case "charm_host":
		c.CharmHost = value
	case "log_level":
		c.LogLevel = value
	case "log_file":
		c.LogFile = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// GetConfigDir returns the directory holding config.json.
func GetConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "liftlog")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.json")
}

// Load reads config from a .env file in the working directory, the config
// file, and LIFTLOG_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(GetConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetEnvPrefix("LIFTLOG")
	v.AutomaticEnv()

	v.SetDefault("backend", BackendAuto)
	v.SetDefault("data_dir", "")
	v.SetDefault("kv_sync", false)
	v.SetDefault("charm_host", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
