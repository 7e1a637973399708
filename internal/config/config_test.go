package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IncludeHidden || cfg.TraverseSymlinks || cfg.Recurse || cfg.Overwrite {
		t.Errorf("expected enumeration switches off by default, got %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log_level %q, got %q", "info", cfg.LogLevel)
	}
	if cfg.Output != OutputText {
		t.Errorf("expected default output %q, got %q", OutputText, cfg.Output)
	}
	if !cfg.Progress {
		t.Error("expected progress on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.treeutil.yml")

	original := DefaultConfig()
	original.IncludeHidden = true
	original.Recurse = true
	original.LogLevel = "debug"
	original.Output = OutputYAML
	original.Progress = false

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("round-trip mismatch:\n got  %+v\n want %+v", loaded, original)
	}
}

func TestLoadNonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load of missing file should return defaults, got error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".treeutil.yml")
	if err := os.WriteFile(path, []byte("traverse_symlinks: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.TraverseSymlinks {
		t.Error("traverse_symlinks should be read from file")
	}
	if cfg.LogLevel != "info" || !cfg.Progress {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".treeutil.yml")
	if err := os.WriteFile(path, []byte("log_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TREEUTIL_LOG_LEVEL", "warn")
	t.Setenv("TREEUTIL_INCLUDE_HIDDEN", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env should override file: log_level = %q", cfg.LogLevel)
	}
	if !cfg.IncludeHidden {
		t.Error("TREEUTIL_INCLUDE_HIDDEN should enable include_hidden")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".treeutil.yml")
	if err := os.WriteFile(path, []byte("output: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid output") {
		t.Fatalf("expected invalid output error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"json output", func(c *Config) { c.Output = OutputJSON }, false},
		{"unknown output", func(c *Config) { c.Output = "csv" }, true},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty level", func(c *Config) { c.LogLevel = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOutput(t *testing.T) {
	if f, err := ParseOutput(" JSON "); err != nil || f != OutputJSON {
		t.Errorf("ParseOutput(JSON) = %q, %v", f, err)
	}
	if _, err := ParseOutput("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
