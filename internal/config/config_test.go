package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return Load(fs, args)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := load(t, "-working-dir", dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Transport != TransportStdio {
		t.Errorf("Transport = %q, want stdio", cfg.Transport)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.MaxFileSizeMB != 10 {
		t.Errorf("MaxFileSizeMB = %d, want 10", cfg.MaxFileSizeMB)
	}
	if cfg.OperationTimeoutSec != 30 {
		t.Errorf("OperationTimeoutSec = %d, want 30", cfg.OperationTimeoutSec)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "working_directory = \"" + dir + "\"\ntransport = \"http\"\nport = 9000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(t, "-config", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Transport != TransportHTTP {
		t.Errorf("Transport = %q, want http", cfg.Transport)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.MaxFileSizeMB != 10 {
		t.Errorf("MaxFileSizeMB = %d, want the default 10", cfg.MaxFileSizeMB)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("port = 9000\ntransport = \"http\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCOPS_PORT", "9100")
	t.Setenv("DOCOPS_WORKING_DIR", dir)

	cfg, err := load(t, "-config", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want env value 9100", cfg.Port)
	}
	if cfg.WorkingDirectory != dir {
		t.Errorf("WorkingDirectory = %q, want %q", cfg.WorkingDirectory, dir)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCOPS_PORT", "9100")
	t.Setenv("DOCOPS_TRANSPORT", "http")

	cfg, err := load(t, "-working-dir", dir, "-port", "9200")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 9200 {
		t.Errorf("Port = %d, want flag value 9200", cfg.Port)
	}
	if cfg.Transport != TransportHTTP {
		t.Errorf("Transport = %q, env value should survive when no flag is set", cfg.Transport)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := load(t, "-config", "/nonexistent/config.toml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid stdio", func(c *Config) {}, false},
		{"valid http", func(c *Config) { c.Transport = TransportHTTP }, false},
		{"bad transport", func(c *Config) { c.Transport = "grpc" }, true},
		{"privileged port", func(c *Config) { c.Transport = TransportHTTP; c.Port = 80 }, true},
		{"port ignored on stdio", func(c *Config) { c.Port = 80 }, false},
		{"file size too small", func(c *Config) { c.MaxFileSizeMB = 0 }, true},
		{"file size too large", func(c *Config) { c.MaxFileSizeMB = 500 }, true},
		{"timeout too short", func(c *Config) { c.OperationTimeoutSec = 1 }, true},
		{"timeout too long", func(c *Config) { c.OperationTimeoutSec = 600 }, true},
		{"missing working dir", func(c *Config) { c.WorkingDirectory = "/does/not/exist" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.WorkingDirectory = dir
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
