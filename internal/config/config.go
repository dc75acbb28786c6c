// Package config loads runtime settings for the sorter CLI.
// Classification thresholds are fixed constants and are not configurable.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvLogLevel = "SORTER_LOG_LEVEL"
	EnvLogFile  = "SORTER_LOG_FILE"
	EnvOutput   = "SORTER_OUTPUT"
)

// Config holds CLI configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig controls the console logger and decision log
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File is the decision log path. Empty disables the decision log.
	File string `yaml:"file"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: "text"},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv(EnvOutput); ok && v != "" {
		c.Output.Format = v
	}
}
