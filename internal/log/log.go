// Package log configures the process-wide structured logger. A TUI
// owns the terminal, so log output goes to a daily file instead of
// stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/lowfield/chorus/internal/config"
)

const appName = "chorus"

// Setup initializes logging from config. When disabled, all emissions
// are discarded.
func Setup(cfg config.LogConfig) error {
	if !cfg.Enabled {
		logrus.SetOutput(io.Discard)
		return nil
	}

	dir, err := xdg.StateFile(filepath.Join(appName, "logs", "."))
	if err != nil {
		return fmt.Errorf("resolve log dir: %w", err)
	}
	dir = filepath.Dir(dir)

	filename := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return nil
}
