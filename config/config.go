// Package config loads the compat framework's process configuration. Values
// are read once at startup; the facade captures the notice suppression flag
// at construction and a new facade is required to change it.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/viper"
)

// NoticesConfig controls deprecation notice emission. One flag deliberately
// gates both the per-operation notice and dead-parameter notices.
type NoticesConfig struct {
	Suppress bool `mapstructure:"suppress" yaml:"suppress"`
}

// LogConfig is the configuration for the logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // zap level name, e.g. "info"
}

// Config wraps the entire configuration for the compat framework.
type Config struct {
	Notices NoticesConfig `mapstructure:"notices" yaml:"notices"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// Load loads the config from the file path, falling back to env vars if the
// file does not exist. If the file exists, any env vars that are set override
// the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	// If the config file exists read it, otherwise fall back to environment
	// variables only.
	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadEnv loads the config from the environment variables.
func LoadEnv() (*Config, error) {
	v := viper.New()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadFile loads the config from a file.
func LoadFile(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// envBindings maps configuration keys to the environment variables that can
// provide them. The first name is the current convention; the second, when
// present, is the legacy name kept for scripts written against the old
// toolkit. Viper checks each listed variable in order and uses the first one
// that is set.
var envBindings = map[string][]string{
	"notices.suppress": {"COMPAT_NOTICES_SUPPRESS", "DISABLE_FUNCTION_NAME_WARNINGS"},
	"log.level":        {"COMPAT_LOG_LEVEL", "TOOLKIT_LOG_LEVEL"},
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// BindEnv takes the config key followed by the candidate variables.
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
