package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.Padding != 60 {
		t.Errorf("Layout.Padding = %v, want 60", cfg.Layout.Padding)
	}
	if cfg.Layout.Strategy != "list" {
		t.Errorf("Layout.Strategy = %s, want list", cfg.Layout.Strategy)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Layout.Strategy = "grid"
	cfg.Layout.Columns = 3
	cfg.Seed = SeedConfig{Path: "/tmp/seed.json", Watch: true}
	cfg.Server.ReadTimeout = Duration(2 * time.Second)

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Layout.Strategy != "grid" || loaded.Layout.Columns != 3 {
		t.Errorf("Layout = %+v, want grid with 3 columns", loaded.Layout)
	}
	if !loaded.Seed.Watch || loaded.Seed.Path != "/tmp/seed.json" {
		t.Errorf("Seed = %+v", loaded.Seed)
	}
	if loaded.Server.ReadTimeout.Duration() != 2*time.Second {
		t.Errorf("ReadTimeout = %s, want 2s", loaded.Server.ReadTimeout.Duration())
	}
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("log:\n  level: DEBUG\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
	if cfg.Layout.Padding != DefaultPadding {
		t.Errorf("Layout.Padding = %v, want %v", cfg.Layout.Padding, DefaultPadding)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, DefaultDatabasePath)
	}
}

func TestLoadFromPath_KeepsExplicitZeros(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "layout:\n  padding: 0\nserver:\n  read_timeout: 0s\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Layout.Padding != 0 {
		t.Errorf("Layout.Padding = %v, want explicit 0", cfg.Layout.Padding)
	}
	if cfg.Server.ReadTimeout != 0 {
		t.Errorf("ReadTimeout = %s, want explicit 0", cfg.Server.ReadTimeout.Duration())
	}
	if cfg.Layout.Columns != DefaultColumns {
		t.Errorf("Layout.Columns = %d, want default %d", cfg.Layout.Columns, DefaultColumns)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want default %s", cfg.Server.Addr, DefaultAddr)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown strategy", "layout:\n  strategy: spiral\n", "Strategy"},
		{"unknown log format", "log:\n  format: xml\n", "Format"},
		{"negative padding", "layout:\n  padding: -5\n", "Padding"},
		{"zero columns", "layout:\n  columns: 0\n", "Columns"},
		{"bad duration", "server:\n  read_timeout: soon\n", "parse config"},
		{"not yaml", "{{", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, _, err := LoadFromPath(configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := DefaultConfig().Save(explicit); err != nil {
		t.Fatal(err)
	}
	if err := DefaultConfig().Save(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	t.Chdir(tmpDir)

	// Explicit path wins
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}

	// Explicit path doesn't exist, should fall back to the working directory
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); filepath.Base(found) != ConfigFileName {
		t.Errorf("FindConfigPath() = %s, want ./%s", found, ConfigFileName)
	}
}

func TestCandidatePaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "/explicit.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/me")

	want := []string{
		"/explicit.yaml",
		ConfigFileName,
		"/xdg/listeditor/config.yaml",
		"/home/me/.config/listeditor/config.yaml",
		"/etc/listeditor/config.yaml",
	}
	got := CandidatePaths()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("CandidatePaths() = %v, want %v", got, want)
	}
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Strategy = "grid"
	if s := cfg.Summary(); !strings.Contains(s, "4 columns") {
		t.Errorf("Summary() = %q, want column count", s)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
