// Package progress polls the live widget for playback position while a
// track is playing and republishes normalized updates.
package progress

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// pollInterval is the fixed cadence of position updates.
const pollInterval = time.Second

// Update carries one position sample. Duration is always > 0.
type Update struct {
	Current  float64 // seconds
	Duration float64 // seconds
}

// Percent returns the normalized progress, clamped to [0, 100].
func (u Update) Percent() float64 {
	p := u.Current / u.Duration * 100
	return math.Min(100, math.Max(0, p))
}

// Source is what the tracker polls. It always re-reads live state; the
// tracker caches nothing, so a seek between two ticks is simply
// reported by the next tick.
type Source interface {
	CurrentTime() (float64, error)
	Duration() (float64, error)
}

// Tracker emits one Update per second while started. There is never
// more than one timer per tracker: Start replaces any running poll.
type Tracker struct {
	mu       sync.Mutex
	emit     func(Update)
	interval time.Duration
	gen      int
	stop     chan struct{}
	ticker   *time.Ticker
}

// New creates a stopped tracker that delivers samples through emit.
func New(emit func(Update)) *Tracker {
	return &Tracker{emit: emit, interval: pollInterval}
}

// Start begins polling src. Any previous poll is stopped first.
func (t *Tracker) Start(src Source) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	t.gen++
	gen := t.gen
	stop := make(chan struct{})
	ticker := time.NewTicker(t.interval)
	t.stop = stop
	t.ticker = ticker

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.poll(gen, src)
			}
		}
	}()
}

// Stop halts polling. It is idempotent and safe when not running. No
// update is delivered after Stop returns.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Tracker) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	// Invalidate any tick already in flight.
	t.gen++
}

// poll reads one sample and emits it. Emission happens under the
// tracker mutex so Stop can guarantee no update lands after it returns.
func (t *Tracker) poll(gen int, src Source) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.gen != gen {
		return
	}

	cur, err := src.CurrentTime()
	if err != nil {
		logrus.WithError(err).Debug("progress: current time poll failed")
		return
	}
	dur, err := src.Duration()
	if err != nil {
		logrus.WithError(err).Debug("progress: duration poll failed")
		return
	}

	// Transient widget states report zero or non-finite values; skip
	// the sample rather than publishing garbage.
	if !isFinite(cur) || !isFinite(dur) || dur <= 0 {
		return
	}

	t.emit(Update{Current: cur, Duration: dur})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
