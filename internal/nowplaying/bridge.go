// Package nowplaying reflects the active track into the window title
// and desktop notifications while background play is enabled. The
// bridge is purely reactive: it holds no timers and only responds to
// playback events.
package nowplaying

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/notify"
	"github.com/lowfield/chorus/internal/playback"
)

// TitleSetter abstracts the window/tab title.
type TitleSetter interface {
	SetTitle(title string)
}

// Bridge mirrors "now playing" into the title bar and notifications.
type Bridge struct {
	mu          sync.Mutex
	titles      TitleSetter
	brand       string
	newNotifier func() (notify.Notifier, error)
	notifier    notify.Notifier
	enabled     bool
	lastID      uint32
}

// New creates a disabled bridge. newNotifier is invoked lazily on the
// first Enable, off the caller's goroutine.
func New(titles TitleSetter, brand string, newNotifier func() (notify.Notifier, error)) *Bridge {
	return &Bridge{
		titles:      titles,
		brand:       brand,
		newNotifier: newNotifier,
	}
}

// Enable turns the bridge on. The notification permission request is
// fire-and-forget: the bridge never blocks on it, and notifications
// simply stay off until it resolves.
func (b *Bridge) Enable() {
	b.mu.Lock()
	if b.enabled {
		b.mu.Unlock()
		return
	}
	b.enabled = true
	needNotifier := b.notifier == nil && b.newNotifier != nil
	b.mu.Unlock()

	if needNotifier {
		go func() {
			n, err := b.newNotifier()
			if err != nil {
				logrus.WithError(err).Warn("notification service unavailable")
				return
			}
			b.mu.Lock()
			b.notifier = n
			b.mu.Unlock()
		}()
	}
}

// Disable turns the bridge off and restores the brand title.
func (b *Bridge) Disable() {
	b.mu.Lock()
	if !b.enabled {
		b.mu.Unlock()
		return
	}
	b.enabled = false
	b.mu.Unlock()

	b.titles.SetTitle(b.brand)
}

// Enabled reports the bridge state.
func (b *Bridge) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// OnTrackChanged reflects a track change while enabled: the title
// becomes "{title} - {artist}" and, when permitted, a notification
// with the track thumbnail replaces the previous one.
func (b *Bridge) OnTrackChanged(track catalog.Track) {
	b.mu.Lock()
	enabled := b.enabled
	notifier := b.notifier
	lastID := b.lastID
	b.mu.Unlock()

	if !enabled {
		return
	}

	b.titles.SetTitle(fmt.Sprintf("%s - %s", track.Title, track.Artist))

	if notifier == nil || !notifier.Permitted() {
		return
	}
	id, err := notifier.Notify(notify.Notification{
		Title:      track.Title,
		Body:       track.Artist,
		Icon:       track.ThumbnailURL,
		Timeout:    5000,
		ReplacesID: lastID,
		Urgency:    notify.UrgencyLow,
	})
	if err != nil {
		logrus.WithError(err).Debug("track notification failed")
		return
	}
	b.mu.Lock()
	b.lastID = id
	b.mu.Unlock()
}

// Run consumes playback events until the subscription closes. Mode
// changes toggle the bridge; track changes are mirrored while on.
func (b *Bridge) Run(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.ModeChanged:
			if e.BackgroundPlay {
				b.Enable()
			} else {
				b.Disable()
			}
		case e := <-sub.TrackChanged:
			if e.Current != nil {
				b.OnTrackChanged(*e.Current)
			}
		}
	}
}
