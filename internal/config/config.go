// Package config loads the server bootstrap settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. LEARNSPRING_ADDR.
const EnvPrefix = "LEARNSPRING"

// Keys understood by Load. Flags bound to a viper instance must use these.
const (
	KeyAddr              = "addr"
	KeyReadHeaderTimeout = "read_header_timeout"
	KeyShutdownTimeout   = "shutdown_timeout"
	KeyLogLevel          = "log_level"
	KeyDevelopment       = "development"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
	Development       bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
	}
}

// New returns a viper instance carrying the defaults and bound to
// LEARNSPRING_* environment variables.
func New() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeyReadHeaderTimeout, d.ReadHeaderTimeout)
	v.SetDefault(KeyShutdownTimeout, d.ShutdownTimeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDevelopment, d.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration from v.
//
// Precedence, highest first: flags bound to v, the process environment,
// dir/.env, dir/application.yaml, defaults. Missing files are skipped.
// Variables from .env never override ones already in the environment.
func Load(v *viper.Viper, dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read application.yaml: %w", err)
		}
	}

	cfg := Config{
		Addr:              v.GetString(KeyAddr),
		ReadHeaderTimeout: v.GetDuration(KeyReadHeaderTimeout),
		ShutdownTimeout:   v.GetDuration(KeyShutdownTimeout),
		LogLevel:          v.GetString(KeyLogLevel),
		Development:       v.GetBool(KeyDevelopment),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field as an *Error.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return &Error{Field: KeyAddr, Message: "must not be empty"}
	}
	if c.ReadHeaderTimeout <= 0 {
		return &Error{Field: KeyReadHeaderTimeout, Message: "must be positive"}
	}
	if c.ShutdownTimeout <= 0 {
		return &Error{Field: KeyShutdownTimeout, Message: "must be positive"}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &Error{Field: KeyLogLevel, Message: err.Error()}
	}
	return nil
}

// Level returns the parsed log level, or Info if LogLevel is invalid.
func (c Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Error describes an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config: " + e.Field + ": " + e.Message
}
