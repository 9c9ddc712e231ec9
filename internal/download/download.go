// Package download captures the user's download intent. No file is
// produced: a request is acknowledged immediately and completes after
// a fixed simulated delay, a placeholder for a real export pipeline.
// Any real implementation must keep the two-phase acknowledgment so
// UI expectations hold.
package download

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lowfield/chorus/internal/catalog"
)

// completeDelay is the simulated time between the started and
// completed acknowledgments.
const completeDelay = 3 * time.Second

// Format is the requested export format.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
)

// Status is the acknowledgment phase.
type Status int

const (
	StatusStarted Status = iota
	StatusComplete
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStarted:
		return "started"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Ack is one acknowledgment for a download request.
type Ack struct {
	Track     catalog.Track
	Format    Format
	Status    Status
	SizeLabel string // simulated file size, e.g. "4.2 MB"
}

// Manager runs simulated downloads. Completion timers are canceled on
// Close so no acknowledgment fires after teardown.
type Manager struct {
	mu     sync.Mutex
	delay  time.Duration
	events chan Ack
	timers map[int]*time.Timer
	nextID int
	closed bool
}

// NewManager creates a manager with the standard simulated delay.
func NewManager() *Manager {
	return &Manager{
		delay:  completeDelay,
		events: make(chan Ack, 16),
		timers: make(map[int]*time.Timer),
	}
}

// Events delivers acknowledgments in emission order.
func (m *Manager) Events() <-chan Ack {
	return m.events
}

// Request acknowledges the download immediately and schedules the
// completion acknowledgment after the fixed delay.
func (m *Manager) Request(track catalog.Track, format Format) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	id := m.nextID
	m.nextID++
	size := simSizeLabel(track, format)

	m.emitLocked(Ack{Track: track, Format: format, Status: StatusStarted, SizeLabel: size})

	m.timers[id] = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.timers, id)
		if m.closed {
			return
		}
		m.emitLocked(Ack{Track: track, Format: format, Status: StatusComplete, SizeLabel: size})
	})
	m.mu.Unlock()
}

// emitLocked sends without blocking; a full buffer drops the ack.
func (m *Manager) emitLocked(a Ack) {
	select {
	case m.events <- a:
	default:
	}
}

// Close cancels all pending completions. Idempotent.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
}

// simSizeLabel derives a stable fake size from the track and format.
func simSizeLabel(track catalog.Track, format Format) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(track.ID))
	_, _ = h.Write([]byte(format))
	base := uint64(2_500_000 + h.Sum32()%6_000_000)
	if format == FormatWAV || format == FormatFLAC {
		base *= 4
	}
	return humanize.Bytes(base)
}

// Label renders an acknowledgment for display.
func (a Ack) Label() string {
	if a.Status == StatusStarted {
		return fmt.Sprintf("Downloading %s (%s, %s)", a.Track.Title, a.Format, a.SizeLabel)
	}
	return fmt.Sprintf("Download complete: %s (%s)", a.Track.Title, a.SizeLabel)
}
