package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path, applies defaults and
// environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	return finish(&cfg)
}

// Load is LoadConfig for the CLI: an empty path means DefaultPath, and a
// missing DefaultPath yields the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	cfg, err := LoadConfig(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return finish(&Config{})
	}
	return cfg, err
}

func finish(cfg *Config) (*Config, error) {
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies TINYJS_SECTION_FIELD variables. Malformed
// numeric values are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TINYJS_DATABASE_PATH"); val != "" {
		cfg.Database.Path = val
	}
	if val := os.Getenv("TINYJS_LOG_VERBOSITY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Log.Verbosity = n
		}
	}
	if val := os.Getenv("TINYJS_LOG_FILE"); val != "" {
		cfg.Log.File = val
	}
	if val := os.Getenv("TINYJS_SERVER_ADDRESS"); val != "" {
		cfg.Server.Address = val
	}
	if val := os.Getenv("TINYJS_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("TINYJS_WATCH_EXTENSIONS"); val != "" {
		cfg.Watch.Extensions = strings.Split(val, ",")
	}
}

// Validate reports the first invalid setting.
func Validate(cfg *Config) error {
	if cfg.Log.Verbosity < -4 || cfg.Log.Verbosity > 5 {
		return fmt.Errorf("log.verbosity %d out of range [-4, 5]", cfg.Log.Verbosity)
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative")
	}
	for _, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch extension %q must start with a dot", ext)
		}
	}
	return nil
}
