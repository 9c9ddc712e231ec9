// Package playback owns the playback session and the transport state
// machine: it validates intents from the UI, issues commands to the
// widget adapter, and applies the adapter's asynchronous events back
// onto the session.
package playback

import (
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/progress"
	"github.com/lowfield/chorus/internal/queue"
	"github.com/lowfield/chorus/internal/widget"
)

// Transport is the command-and-event surface the controller needs from
// the widget adapter. Commands are fire-and-forget; outcomes arrive on
// the event channels.
type Transport interface {
	Load(externalID string)
	Play()
	Pause()
	Seek(seconds float64)
	SetVolume(volume int)
	CurrentTime() (float64, error)
	Connected() bool

	Ready() <-chan struct{}
	States() <-chan widget.State
	Progress() <-chan progress.Update
	Errors() <-chan widget.Error

	Destroy()
}

// Verify the adapter satisfies Transport at compile time.
var _ Transport = (*widget.Adapter)(nil)

// VolumeStore persists the volume level across runs.
type VolumeStore interface {
	Volume() (int, error)
	SetVolume(v int) error
}

// defaultVolume is used when no persisted volume exists.
const defaultVolume = 80

// Controller is the transport state machine. All mutation goes through
// its methods; adapter events are applied one at a time by the event
// pump, so no update ever observes a half-applied intent.
type Controller struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	queue     *queue.Queue
	transport Transport
	store     VolumeStore
	randIdx   func(int) int

	current        *catalog.Track
	playing        bool
	volume         int
	progressPct    float64
	currentSeconds float64
	durationSecs   float64
	shuffle        bool
	repeat         RepeatMode
	backgroundPlay bool

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a controller. The persisted volume is restored (default
// 80) and pushed to the transport as the desired level.
func New(cat *catalog.Catalog, q *queue.Queue, t Transport, store VolumeStore) *Controller {
	c := &Controller{
		catalog:   cat,
		queue:     q,
		transport: t,
		store:     store,
		randIdx:   rand.Intn,
		volume:    defaultVolume,
		done:      make(chan struct{}),
	}
	if store != nil {
		if v, err := store.Volume(); err == nil {
			c.volume = clampVolume(v)
		} else {
			logrus.WithError(err).Warn("volume restore failed")
		}
	}
	t.SetVolume(c.volume)
	return c
}

// Start launches the event pump consuming transport events.
func (c *Controller) Start() {
	go c.pump()
}

func (c *Controller) pump() {
	for {
		select {
		case <-c.done:
			return
		case <-c.transport.Ready():
			logrus.Debug("widget ready")
		case s := <-c.transport.States():
			c.handleWidgetState(s)
		case u := <-c.transport.Progress():
			c.handleProgress(u)
		case e := <-c.transport.Errors():
			c.handleWidgetError(e)
		}
	}
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// Session returns a snapshot of the playback state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked()
}

func (c *Controller) sessionLocked() Session {
	var t *catalog.Track
	if c.current != nil {
		cp := *c.current
		t = &cp
	}
	return Session{
		CurrentTrack:          t,
		IsPlaying:             c.playing,
		Volume:                c.volume,
		ProgressPercent:       c.progressPct,
		CurrentTimeSeconds:    c.currentSeconds,
		DurationSeconds:       c.durationSecs,
		ShuffleEnabled:        c.shuffle,
		RepeatMode:            c.repeat,
		Queue:                 c.queue.Tracks(),
		NextUp:                c.queue.Peek(),
		BackgroundPlayEnabled: c.backgroundPlay,
	}
}

// PlayTrack loads and plays a track. Tracks without an external media
// ID, or commands issued before the adapter is connected, are silent
// no-ops.
func (c *Controller) PlayTrack(t catalog.Track) {
	if !t.Playable() || !c.transport.Connected() {
		return
	}

	c.mu.Lock()
	prev := c.current
	cp := t
	c.current = &cp
	c.playing = true
	c.progressPct = 0
	c.currentSeconds = 0
	c.durationSecs = 0
	c.mu.Unlock()

	c.transport.Load(t.ExternalMediaID)

	c.emit(func(s *Subscription) {
		s.sendTrack(TrackChange{Previous: prev, Current: &cp})
		s.sendState(StateChange{Playing: true})
	})
}

// TogglePlay flips play/pause. With no current track it starts the
// first catalog entry instead.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		if first := c.catalog.Track(0); first != nil {
			c.PlayTrack(*first)
		}
		return
	}
	c.playing = !c.playing
	playing := c.playing
	c.mu.Unlock()

	if playing {
		c.transport.Play()
	} else {
		c.transport.Pause()
	}
	c.emit(func(s *Subscription) { s.sendState(StateChange{Playing: playing}) })
}

// Next skips forward: catalog index+1, with shuffle/repeat handling at
// the end of the catalog. No-op past the last entry in plain mode.
func (c *Controller) Next() {
	c.mu.Lock()
	idx := c.currentIndexLocked()
	n := c.catalog.Len()
	shuffle, mode := c.shuffle, c.repeat
	c.mu.Unlock()

	if ni := nextIndex(idx, n, shuffle, mode, c.randIdx); ni >= 0 {
		if t := c.catalog.Track(ni); t != nil {
			c.PlayTrack(*t)
		}
	}
}

// Previous restarts the current track when the playhead is past the
// restart threshold, otherwise skips backward per the resolution
// policy.
func (c *Controller) Previous() {
	if pos, err := c.transport.CurrentTime(); err == nil && pos > restartThresholdSeconds {
		c.transport.Seek(0)
		c.mu.Lock()
		c.currentSeconds = 0
		c.progressPct = 0
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	idx := c.currentIndexLocked()
	n := c.catalog.Len()
	shuffle, mode := c.shuffle, c.repeat
	c.mu.Unlock()

	if pi := prevIndex(idx, n, shuffle, mode, c.randIdx); pi >= 0 {
		if t := c.catalog.Track(pi); t != nil {
			c.PlayTrack(*t)
		}
	}
}

// currentIndexLocked returns the catalog index of the current track,
// or -1 when nothing is loaded.
func (c *Controller) currentIndexLocked() int {
	if c.current == nil {
		return -1
	}
	return c.catalog.IndexOf(c.current.ID)
}

// SetVolume clamps to [0,100], forwards to the transport and persists.
func (c *Controller) SetVolume(v int) {
	v = clampVolume(v)

	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()

	c.transport.SetVolume(v)
	if c.store != nil {
		if err := c.store.SetVolume(v); err != nil {
			logrus.WithError(err).Warn("volume persist failed")
		}
	}
	c.emit(func(s *Subscription) { s.sendVolume(VolumeChange{Volume: v}) })
}

// Volume returns the current volume.
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SeekPercent converts a 0..100 position into seconds against the
// known duration and forwards it. Unknown duration is a no-op.
func (c *Controller) SeekPercent(pct float64) {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	c.mu.Lock()
	dur := c.durationSecs
	c.mu.Unlock()
	if dur <= 0 {
		return
	}
	c.transport.Seek(pct / 100 * dur)
}

// ToggleShuffle flips shuffle. Affects only future resolution, never
// the loaded track.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	c.shuffle = !c.shuffle
	e := ModeChange{RepeatMode: c.repeat, Shuffle: c.shuffle, BackgroundPlay: c.backgroundPlay}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendMode(e) })
	return e.Shuffle
}

// CycleRepeatMode advances Off → All → One → Off.
func (c *Controller) CycleRepeatMode() RepeatMode {
	c.mu.Lock()
	c.repeat = c.repeat.Cycle()
	e := ModeChange{RepeatMode: c.repeat, Shuffle: c.shuffle, BackgroundPlay: c.backgroundPlay}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendMode(e) })
	return e.RepeatMode
}

// ToggleBackgroundPlay flips the background-play capability.
func (c *Controller) ToggleBackgroundPlay() bool {
	c.mu.Lock()
	c.backgroundPlay = !c.backgroundPlay
	e := ModeChange{RepeatMode: c.repeat, Shuffle: c.shuffle, BackgroundPlay: c.backgroundPlay}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendMode(e) })
	return e.BackgroundPlay
}

// Enqueue appends a track to the up-next queue.
func (c *Controller) Enqueue(t catalog.Track) {
	c.mu.Lock()
	c.queue.Enqueue(t)
	e := QueueChange{Tracks: c.queue.Tracks()}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendQueue(e) })
}

// ClearQueue drops every queued track.
func (c *Controller) ClearQueue() {
	c.mu.Lock()
	c.queue.Clear()
	e := QueueChange{Tracks: c.queue.Tracks()}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendQueue(e) })
}

// QueueTracks returns a copy of the queued tracks.
func (c *Controller) QueueTracks() []catalog.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Tracks()
}

// handleTrackEnded applies the end-of-track policy:
//  1. RepeatOne replays the same track from the start.
//  2. A non-empty queue always wins: dequeue the head and play it.
//  3. RepeatAll falls back to catalog order, wrapping at the end.
//  4. Otherwise stop, keeping the last track loaded.
func (c *Controller) handleTrackEnded() {
	c.mu.Lock()
	if c.repeat == RepeatOne {
		c.currentSeconds = 0
		c.progressPct = 0
		c.mu.Unlock()
		c.transport.Seek(0)
		c.transport.Play()
		return
	}

	if !c.queue.IsEmpty() {
		head := c.queue.DequeueNext()
		e := QueueChange{Tracks: c.queue.Tracks()}
		c.mu.Unlock()
		c.emit(func(s *Subscription) { s.sendQueue(e) })
		c.PlayTrack(*head)
		return
	}

	if c.repeat == RepeatAll {
		idx := c.currentIndexLocked()
		n := c.catalog.Len()
		shuffle := c.shuffle
		c.mu.Unlock()
		if ni := nextIndex(idx, n, shuffle, RepeatAll, c.randIdx); ni >= 0 {
			if t := c.catalog.Track(ni); t != nil {
				c.PlayTrack(*t)
			}
		}
		return
	}

	// Out of material: stop but keep the last track loaded.
	c.playing = false
	c.mu.Unlock()
	c.emit(func(s *Subscription) { s.sendState(StateChange{Playing: false}) })
}

func (c *Controller) handleWidgetState(s widget.State) {
	switch s {
	case widget.StateEnded:
		c.handleTrackEnded()
	case widget.StatePlaying:
		c.setPlaying(true)
	case widget.StatePaused:
		c.setPlaying(false)
	}
}

func (c *Controller) setPlaying(playing bool) {
	c.mu.Lock()
	if c.playing == playing || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.playing = playing
	c.mu.Unlock()
	c.emit(func(s *Subscription) { s.sendState(StateChange{Playing: playing}) })
}

func (c *Controller) handleProgress(u progress.Update) {
	c.mu.Lock()
	c.currentSeconds = u.Current
	c.durationSecs = u.Duration
	c.progressPct = u.Percent()
	e := ProgressChange{Percent: c.progressPct, Current: u.Current, Duration: u.Duration}
	c.mu.Unlock()

	c.emit(func(s *Subscription) { s.sendProgress(e) })
}

func (c *Controller) handleWidgetError(e widget.Error) {
	c.emit(func(s *Subscription) { s.sendError(ErrorEvent{Err: e}) })
}

func (c *Controller) emit(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

// Close stops the event pump, tears down the transport and closes all
// subscriptions. Safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.transport.Destroy()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
	return nil
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
