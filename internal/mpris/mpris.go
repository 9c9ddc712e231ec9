//go:build linux

// Package mpris exposes the playback controller on the D-Bus session
// bus, so desktop media keys and applets drive the same transport as
// the in-process UI.
package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/lowfield/chorus/internal/playback"
)

// Adapter connects the Controller to MPRIS over D-Bus.
type Adapter struct {
	controller *playback.Controller
	server     *server.Server
	done       chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(controller *playback.Controller) (*Adapter, error) {
	a := &Adapter{
		controller: controller,
		done:       make(chan struct{}),
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{controller: controller}

	a.server = server.NewServer("chorus", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Chorus", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil // Playback goes through the embedded widget
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and
// optional interfaces.
type playerAdapter struct {
	controller *playback.Controller
}

func (p *playerAdapter) Next() error {
	p.controller.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.controller.Previous()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.controller.Session().IsPlaying {
		p.controller.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.controller.TogglePlay()
	return nil
}

func (p *playerAdapter) Stop() error {
	if p.controller.Session().IsPlaying {
		p.controller.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) Play() error {
	if !p.controller.Session().IsPlaying {
		p.controller.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	s := p.controller.Session()
	if s.DurationSeconds <= 0 {
		return nil
	}
	target := s.CurrentTimeSeconds + float64(offset)/1e6
	p.controller.SeekPercent(target / s.DurationSeconds * 100)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	s := p.controller.Session()
	if s.DurationSeconds <= 0 {
		return nil
	}
	p.controller.SeekPercent(float64(position) / 1e6 / s.DurationSeconds * 100)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.controller.Session()
	switch {
	case s.IsPlaying:
		return types.PlaybackStatusPlaying, nil
	case s.CurrentTrack != nil:
		return types.PlaybackStatusPaused, nil
	default:
		return types.PlaybackStatusStopped, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.controller.Session()
	if s.CurrentTrack == nil {
		return types.Metadata{}, nil
	}
	track := s.CurrentTrack

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(s.DurationSeconds * 1e6),
		Title:   track.Title,
		Artist:  []string{track.Artist},
		Album:   track.Album,
	}
	if track.ThumbnailURL != "" {
		meta.ArtUrl = track.ThumbnailURL
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return float64(p.controller.Volume()) / 100, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.controller.SetVolume(int(v * 100))
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.controller.Session().CurrentTimeSeconds * 1e6), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.controller.Session().RepeatMode {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	default:
		return types.LoopStatusNone, nil
	}
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// The controller only cycles modes, so advance until the requested one
// comes up.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	want := playback.RepeatOff
	switch status {
	case types.LoopStatusTrack:
		want = playback.RepeatOne
	case types.LoopStatusPlaylist:
		want = playback.RepeatAll
	}
	for i := 0; i < 3 && p.controller.Session().RepeatMode != want; i++ {
		p.controller.CycleRepeatMode()
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.controller.Session().ShuffleEnabled, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.controller.Session().ShuffleEnabled != shuffle {
		p.controller.ToggleShuffle()
	}
	return nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
