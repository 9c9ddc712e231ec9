package progress

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

// fakeSource is a scriptable Source for tests.
type fakeSource struct {
	mu       sync.Mutex
	current  float64
	duration float64
	err      error
}

func (s *fakeSource) set(cur, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current, s.duration = cur, dur
}

func (s *fakeSource) CurrentTime() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.err
}

func (s *fakeSource) Duration() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, s.err
}

// collect starts a tracker with a short interval and gathers updates.
func collect(t *testing.T, src Source) (*Tracker, func() []Update) {
	t.Helper()

	var mu sync.Mutex
	var got []Update
	tr := New(func(u Update) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, u)
	})
	tr.interval = 5 * time.Millisecond
	tr.Start(src)

	return tr, func() []Update {
		mu.Lock()
		defer mu.Unlock()
		out := make([]Update, len(got))
		copy(out, got)
		return out
	}
}

func TestTracker_EmitsUpdates(t *testing.T) {
	src := &fakeSource{current: 30, duration: 120}
	tr, updates := collect(t, src)
	defer tr.Stop()

	deadline := time.Now().Add(time.Second)
	for len(updates()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	got := updates()
	if len(got) == 0 {
		t.Fatal("no updates emitted")
	}
	if got[0].Current != 30 || got[0].Duration != 120 {
		t.Errorf("update = %+v, want {30 120}", got[0])
	}
	if got[0].Percent() != 25 {
		t.Errorf("Percent() = %v, want 25", got[0].Percent())
	}
}

func TestTracker_SuppressesZeroDuration(t *testing.T) {
	src := &fakeSource{current: 10, duration: 0}
	tr, updates := collect(t, src)
	defer tr.Stop()

	time.Sleep(50 * time.Millisecond)

	if got := updates(); len(got) != 0 {
		t.Errorf("emitted %d updates with zero duration, want 0", len(got))
	}
}

func TestTracker_SuppressesNonFinite(t *testing.T) {
	src := &fakeSource{current: math.NaN(), duration: 120}
	tr, updates := collect(t, src)
	defer tr.Stop()

	time.Sleep(50 * time.Millisecond)

	if got := updates(); len(got) != 0 {
		t.Errorf("emitted %d updates with NaN position, want 0", len(got))
	}
}

func TestTracker_SwallowsPollErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("gone")}
	tr, updates := collect(t, src)
	defer tr.Stop()

	time.Sleep(50 * time.Millisecond)

	if got := updates(); len(got) != 0 {
		t.Errorf("emitted %d updates despite poll errors, want 0", len(got))
	}
}

func TestTracker_StopIsSynchronous(t *testing.T) {
	src := &fakeSource{current: 5, duration: 60}
	tr, updates := collect(t, src)

	deadline := time.Now().Add(time.Second)
	for len(updates()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	tr.Stop()
	count := len(updates())

	// Source keeps reporting time internally, but no tick may land
	// after Stop has returned.
	src.set(50, 60)
	time.Sleep(50 * time.Millisecond)

	if got := len(updates()); got != count {
		t.Errorf("updates after Stop(): %d new", got-count)
	}
}

func TestTracker_StopIdempotent(t *testing.T) {
	tr := New(func(Update) {})

	tr.Stop()
	tr.Stop()

	src := &fakeSource{current: 1, duration: 2}
	tr.interval = 5 * time.Millisecond
	tr.Start(src)
	tr.Stop()
	tr.Stop()
}

func TestTracker_RestartReplacesTimer(t *testing.T) {
	src1 := &fakeSource{current: 1, duration: 100}
	src2 := &fakeSource{current: 2, duration: 100}

	tr, updates := collect(t, src1)
	defer tr.Stop()

	// Restart against a second source; only src2 samples may arrive now.
	tr.Start(src2)
	time.Sleep(30 * time.Millisecond)

	before := updates()
	time.Sleep(30 * time.Millisecond)
	for _, u := range updates()[len(before):] {
		if u.Current == 1 {
			t.Fatal("stale timer still polling the old source")
		}
	}
}

func TestUpdate_PercentClamped(t *testing.T) {
	if got := (Update{Current: 500, Duration: 100}).Percent(); got != 100 {
		t.Errorf("Percent() = %v, want 100", got)
	}
	if got := (Update{Current: -5, Duration: 100}).Percent(); got != 0 {
		t.Errorf("Percent() = %v, want 0", got)
	}
}
