// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the application settings (database,
// language, logging, clipboard). Values come from defaults, passgen.yaml,
// PASSGEN_* environment variables and command-line flags, in increasing
// precedence. The password configuration itself lives in the database.
package config // import "github.com/toeirei/passgen/internal/config"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Log      struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
	Clipboard struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"clipboard" yaml:"clipboard"`
}

// Defaults returns the default settings keyed by their dotted names.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":     "sqlite",
		"database.dsn":      DefaultDSN(),
		"language":          "en",
		"log.level":         "warn",
		"clipboard.enabled": true,
	}
}

// DefaultDSN places the SQLite database next to the user configuration, or
// in the working directory when no config directory is available.
func DefaultDSN() string {
	path, err := GetConfigPath(false)
	if err != nil {
		return "passgen.db"
	}
	return filepath.Join(filepath.Dir(path), "passgen.db")
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Passgen")
		default:
			configDir = "/etc/passgen"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "passgen")
	}
	return filepath.Join(configDir, "passgen.yaml"), nil
}

// LoadConfig resolves a T from defaults, config files, environment and the
// flags of cmd. When no config file exists the populated value is returned
// together with a viper.ConfigFileNotFoundError, which callers may ignore.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("passgen")
	v.SetConfigType("yaml")
	explicit := configFile != nil && *configFile != ""
	if explicit {
		v.SetConfigFile(*configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(readErr, &notFound):
		case explicit && errors.Is(readErr, os.ErrNotExist):
			return c, fmt.Errorf("config file %s: %w", *configFile, readErr)
		default:
			return c, readErr
		}
	}

	v.SetEnvPrefix("passgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, readErr
}

// WriteConfigFile stores c as YAML in the user or system config location.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo stores c as YAML at path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	// 0600: the DSN may carry database credentials.
	return os.WriteFile(path, data, 0o600)
}
