// Package config loads server configuration from four layers in increasing
// precedence: built-in defaults, an optional TOML file, DOCOPS_* environment
// variables, and command line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"document-ops-server/internal/filesystem"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all runtime settings of the server.
type Config struct {
	// WorkingDirectory is the base directory relative document paths resolve
	// against.
	WorkingDirectory string `toml:"working_directory"`
	// Transport selects "stdio" or "http".
	Transport string `toml:"transport"`
	// Port is the HTTP listen port; ignored for stdio.
	Port int `toml:"port"`
	// MaxFileSizeMB caps the size of source documents read by tools.
	MaxFileSizeMB int `toml:"max_file_size_mb"`
	// OperationTimeoutSec bounds a single HTTP tool call.
	OperationTimeoutSec int `toml:"operation_timeout_sec"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WorkingDirectory:    ".",
		Transport:           TransportStdio,
		Port:                8080,
		MaxFileSizeMB:       10,
		OperationTimeoutSec: 30,
	}
}

// Load builds a Config from the layered sources and validates it. args are
// the command line arguments without the program name.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	configFile := fs.String("config", "", "Path to a TOML config file")
	workingDir := fs.String("working-dir", cfg.WorkingDirectory, "Base directory for relative document paths")
	transport := fs.String("transport", cfg.Transport, "Transport to use: stdio or http")
	port := fs.Int("port", cfg.Port, "HTTP listen port")
	maxFileSize := fs.Int("max-file-size-mb", cfg.MaxFileSizeMB, "Maximum source document size in MB")
	timeout := fs.Int("timeout-sec", cfg.OperationTimeoutSec, "Per-operation timeout in seconds for HTTP")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := *configFile
	if path == "" {
		path = os.Getenv("DOCOPS_CONFIG")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	// Flags win over everything, but only the ones actually set.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "working-dir":
			cfg.WorkingDirectory = *workingDir
		case "transport":
			cfg.Transport = *transport
		case "port":
			cfg.Port = *port
		case "max-file-size-mb":
			cfg.MaxFileSizeMB = *maxFileSize
		case "timeout-sec":
			cfg.OperationTimeoutSec = *timeout
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DOCOPS_WORKING_DIR"); v != "" {
		cfg.WorkingDirectory = v
	}
	if v := os.Getenv("DOCOPS_TRANSPORT"); v != "" {
		cfg.Transport = v
	}
	if v := os.Getenv("DOCOPS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("DOCOPS_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("DOCOPS_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OperationTimeoutSec = n
		}
	}
}

// Validate checks the configuration for out-of-range values and an unusable
// working directory.
func (c *Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport %q: must be %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}
	if c.Transport == TransportHTTP && (c.Port < 1024 || c.Port > 65535) {
		return fmt.Errorf("invalid port %d: must be between 1024 and 65535", c.Port)
	}
	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("invalid max file size %d MB: must be between 1 and 100", c.MaxFileSizeMB)
	}
	if c.OperationTimeoutSec < 5 || c.OperationTimeoutSec > 300 {
		return fmt.Errorf("invalid operation timeout %d s: must be between 5 and 300", c.OperationTimeoutSec)
	}
	if err := filesystem.CheckDirectoryIsWritable(c.WorkingDirectory); err != nil {
		return fmt.Errorf("working directory is not usable: %w", err)
	}
	return nil
}
