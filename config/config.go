// Package config loads tinyjs settings from a YAML file, fills in
// defaults and applies TINYJS_* environment overrides.
package config

import "time"

// DefaultPath is read when no --config flag is given. A missing default
// file is not an error.
const DefaultPath = "tinyjs.yaml"

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
}

type DatabaseConfig struct {
	// Path is the SQLite file holding saved snippets.
	Path string `yaml:"path"`
}

type LogConfig struct {
	// Verbosity follows commonlog: 0 logs errors and warnings, each step
	// up adds notice, info and debug.
	Verbosity int `yaml:"verbosity"`
	// File is a log file path; empty logs to stderr.
	File string `yaml:"file"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// MaxBodyBytes bounds the size of submitted source.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type WatchConfig struct {
	// Extensions selects which files are parsed, e.g. [".js"].
	Extensions []string `yaml:"extensions"`
}
