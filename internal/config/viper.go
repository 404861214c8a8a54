// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional config file, then environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Uploads struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"uploads" yaml:"uploads"`

	Lookup struct {
		// File optionally points at a YAML file whose merchants are
		// merged over the built-in lookup table.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"lookup" yaml:"lookup"`

	AI struct {
		Model  string `mapstructure:"model" yaml:"model"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading and resolves the data paths.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expenserule")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("EXPENSERULE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is conventionally set as GEMINI_API_KEY, without
	// the prefix.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY", "EXPENSERULE_AI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := resolveDataPaths(&config); err != nil {
		return nil, err
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Loopback only: the API has no authentication.
	v.SetDefault("server.addr", "127.0.0.1:8765")

	// Empty paths are resolved against the data directory.
	v.SetDefault("data.directory", "")
	v.SetDefault("database.path", "")
	v.SetDefault("uploads.dir", "")
	v.SetDefault("lookup.file", "")

	v.SetDefault("ai.model", "gemini-1.5-flash")
}

// resolveDataPaths fills in the paths that default to living under the
// data directory (~/.expenserule unless configured otherwise).
func resolveDataPaths(config *Config) error {
	if config.Data.Directory == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		config.Data.Directory = filepath.Join(home, ".expenserule")
	}
	if config.Database.Path == "" {
		config.Database.Path = filepath.Join(config.Data.Directory, "expenses.db")
	}
	if config.Uploads.Dir == "" {
		config.Uploads.Dir = filepath.Join(config.Data.Directory, "uploads")
	}
	return nil
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, _, err := net.SplitHostPort(config.Server.Addr); err != nil {
		return fmt.Errorf("invalid server address %q: %w", config.Server.Addr, err)
	}

	if strings.TrimSpace(config.AI.Model) == "" {
		return fmt.Errorf("ai.model must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger according to the
// configured level and format.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
