// Package config resolves resto's on-disk locations and user settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resto/internal/log"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// EnvPrefix namespaces environment overrides, e.g. RESTO_HTTP_TIMEOUT.
	EnvPrefix = "RESTO"
	// LogLevelEnv overrides log.level.
	LogLevelEnv = "RESTO_LOGLEVEL"
)

var (
	// ConfigDir is the global configuration directory (~/.resto)
	ConfigDir string

	// ConfigFile is the default settings file
	ConfigFile string

	// DatabasePath is the SQLite database file for history
	DatabasePath string

	// SessionFile holds the draft request between runs
	SessionFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

// Initialize sets up the configuration directories and files
// It creates ~/.resto/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".resto"))
}

// InitializeAt is Initialize rooted at dir.
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "resto.db")
	SessionFile = filepath.Join(ConfigDir, "session.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}
	return nil
}

// Config holds all user settings.
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Insecure  bool          `mapstructure:"insecure" yaml:"insecure"`
}

type EditorConfig struct {
	// ClipboardSystem mirrors yanks to the OS clipboard.
	ClipboardSystem bool `mapstructure:"clipboard_system" yaml:"clipboard_system"`
}

type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Limit caps stored entries; 0 keeps everything.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "resto HTTP Client/1.0",
		},
		Editor:  EditorConfig{ClipboardSystem: true},
		History: HistoryConfig{Enabled: true, Limit: 500},
		Log:     LogConfig{Level: "info", File: log.DefaultPath},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.insecure", d.HTTP.Insecure)
	v.SetDefault("editor.clipboard_system", d.Editor.ClipboardSystem)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.limit", d.History.Limit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads settings into a Config. cfgFile wins when set; otherwise
// ConfigFile is used and created with defaults if missing. RESTO_* variables
// override file values. It returns the file actually used.
func Load(v *viper.Viper, cfgFile string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", LogLevelEnv, "RESTO_LOG_LEVEL")

	path := cfgFile
	if path == "" {
		path = ConfigFile
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			switch {
			case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
				if cfgFile != "" {
					return Config{}, "", fmt.Errorf("config file %s not found", cfgFile)
				}
				if writeErr := WriteDefaultConfig(path); writeErr != nil {
					path = ""
				}
			default:
				return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	log.Debug(log.CatConfig, "config loaded", "path", path, "timeout", cfg.HTTP.Timeout, "history", cfg.History.Enabled)
	return cfg, path, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

const defaultHeader = `# resto configuration
# Every key can be overridden with a RESTO_ environment variable,
# e.g. RESTO_HTTP_TIMEOUT=10s or RESTO_LOGLEVEL=debug.
`

// WriteDefaultConfig creates a config file at the given path with default settings.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	body, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(configPath, append([]byte(defaultHeader), body...), FilePermissions); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
