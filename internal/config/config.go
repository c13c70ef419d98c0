// Package config loads runtime settings from the environment, an optional
// .env file and an optional config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. TRAILHEAD_DRIVER
const EnvPrefix = "TRAILHEAD"

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Driver      string `mapstructure:"DRIVER" validate:"required,oneof=sqlite postgres"`
	DBPath      string `mapstructure:"DB_PATH" validate:"required_if=Driver sqlite"`
	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required_if=Driver postgres,omitempty,url"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`
	LogFile   string `mapstructure:"LOG_FILE"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	keys = []string{
		"DRIVER",
		"DB_PATH",
		"DATABASE_URL",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"LOG_FILE",
	}
)

// Load reads .env files if present, applies defaults, binds TRAILHEAD_*
// env vars, reads config.yaml from the search paths and validates the result.
// With no paths the working directory and the XDG config dir are searched.
func Load(paths ...string) (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", ConfigDir()}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", DefaultDBPath())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// ConfigDir returns the XDG config location of trailhead
func ConfigDir() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "trailhead")
}

// DefaultDBPath returns the XDG data location of the SQLite database
func DefaultDBPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "trailhead", "trailhead.db")
}

// DefaultLogPath returns the XDG state location used by the TUI log file
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "trailhead", "trailhead.log")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
