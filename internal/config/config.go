package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// BrandTitle is the default window title restored when background play
// is disabled.
const BrandTitle = "Chorus"

type Config struct {
	// CatalogPath points to the JSON track catalog. Empty means use the
	// built-in demo catalog.
	CatalogPath string `koanf:"catalog_path"`

	// MountPoint identifies the widget mount. Multiple instances on the
	// same mount are not supported.
	MountPoint string `koanf:"mount_point"`

	// Notifications enables desktop notifications for track changes
	// while background play is on.
	Notifications bool `koanf:"notifications"`

	// Mpris exposes the player on the session bus (Linux only).
	Mpris bool `koanf:"mpris"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Enabled bool   `koanf:"enabled"`
	Level   string `koanf:"level"` // logrus level name (default: "info")
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		MountPoint:    "player",
		Notifications: true,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CatalogPath != "" {
		cfg.CatalogPath = expandPath(cfg.CatalogPath)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chorus/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chorus", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
