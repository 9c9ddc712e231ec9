package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/catalog.json",
			expected: filepath.Join(home, "catalog.json"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/music/catalog.json",
			expected: "/srv/music/catalog.json",
		},
		{
			name:     "relative path unchanged",
			input:    "catalog.json",
			expected: "catalog.json",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml (highest priority)
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so no local config.toml interferes.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MountPoint != "player" {
		t.Errorf("MountPoint = %q, want %q", cfg.MountPoint, "player")
	}
	if !cfg.Notifications {
		t.Error("Notifications should default to true")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_LocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
mount_point = "main-player"
notifications = false

[log]
enabled = true
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.MountPoint != "main-player" {
		t.Errorf("MountPoint = %q, want %q", cfg.MountPoint, "main-player")
	}
	if cfg.Notifications {
		t.Error("Notifications = true, want false")
	}
	if !cfg.Log.Enabled || cfg.Log.Level != "debug" {
		t.Errorf("Log = %+v, want enabled debug", cfg.Log)
	}
}
