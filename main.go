package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/config"
	"github.com/lowfield/chorus/internal/download"
	"github.com/lowfield/chorus/internal/log"
	"github.com/lowfield/chorus/internal/mpris"
	"github.com/lowfield/chorus/internal/notify"
	"github.com/lowfield/chorus/internal/nowplaying"
	"github.com/lowfield/chorus/internal/playback"
	"github.com/lowfield/chorus/internal/prefs"
	"github.com/lowfield/chorus/internal/queue"
	"github.com/lowfield/chorus/internal/ui"
	"github.com/lowfield/chorus/internal/widget"
)

// demoTracks is the built-in catalog used when no catalog file is
// configured, so the player works out of the box.
var demoTracks = []catalog.Track{
	{ID: "nf-night-drive", Title: "Night Drive", Artist: "Neon Fields", Album: "City Lights", DurationLabel: "3:42", ExternalMediaID: "nf-night-drive"},
	{ID: "nf-glass-harbor", Title: "Glass Harbor", Artist: "Neon Fields", Album: "City Lights", DurationLabel: "4:05", ExternalMediaID: "nf-glass-harbor"},
	{ID: "mv-low-tide", Title: "Low Tide", Artist: "Mara Voss", Album: "Driftwood", DurationLabel: "2:58", ExternalMediaID: "mv-low-tide"},
	{ID: "mv-paper-lanterns", Title: "Paper Lanterns", Artist: "Mara Voss", Album: "Driftwood", DurationLabel: "3:21", ExternalMediaID: "mv-paper-lanterns"},
	{ID: "tc-slow-orbit", Title: "Slow Orbit", Artist: "The Cartographers", Album: "Meridian", DurationLabel: "5:12", ExternalMediaID: "tc-slow-orbit"},
	{ID: "tc-meridian", Title: "Meridian", Artist: "The Cartographers", Album: "Meridian", DurationLabel: "4:47", ExternalMediaID: "tc-meridian"},
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.New(demoTracks), nil
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := log.Setup(cfg.Log); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	store, err := prefs.Open()
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer store.Close()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	loader := widget.NewLoader(widget.SimBootstrap{})
	transport := widget.NewAdapter(loader, widget.NewSimFactory(), cfg.MountPoint)

	controller := playback.New(cat, queue.New(), transport, store)
	controller.Start()
	defer controller.Close()
	transport.Initialize()

	if cfg.Notifications {
		bridge := nowplaying.New(nowplaying.NewTerminalTitle(), config.BrandTitle, notify.New)
		go bridge.Run(controller.Subscribe())
		defer bridge.Disable()
	}

	if cfg.Mpris {
		bus, err := mpris.New(controller)
		if err != nil {
			logrus.Warnf("mpris unavailable: %v", err)
		} else {
			defer bus.Close()
		}
	}

	downloads := download.NewManager()
	defer downloads.Close()

	p := tea.NewProgram(ui.New(controller, cat, downloads), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
