package widget

import (
	"hash/fnv"
	"sync"
	"time"
)

// SimFactory builds simulated widgets: clock-driven players that report
// position, signal ready asynchronously and end tracks on their own,
// so the binary runs without a real embed.
type SimFactory struct {
	readyDelay time.Duration
}

// Verify SimFactory implements Factory at compile time.
var _ Factory = (*SimFactory)(nil)

// NewSimFactory creates a factory for simulated widgets.
func NewSimFactory() *SimFactory {
	return &SimFactory{readyDelay: 100 * time.Millisecond}
}

func (f *SimFactory) New(_ string, ev Events) (Widget, error) {
	s := &sim{
		ev:     ev,
		volume: 80,
		done:   make(chan struct{}),
		events: make(chan func(), eventBufferSize),
	}
	go s.dispatch()
	go func() {
		time.Sleep(f.readyDelay)
		s.emitReady()
	}()
	go s.run()
	return s, nil
}

// SimBootstrap satisfies Bootstrap with a short simulated fetch.
type SimBootstrap struct{}

func (SimBootstrap) Load() error {
	time.Sleep(10 * time.Millisecond)
	return nil
}

// sim plays nothing; it just advances a clock.
type sim struct {
	mu        sync.Mutex
	ev        Events
	playing   bool
	loaded    bool
	destroyed bool
	startedAt time.Time
	offset    float64 // seconds accumulated before startedAt
	duration  float64
	volume    int
	done      chan struct{}
	events    chan func()
}

// dispatch delivers callbacks one at a time, so states arrive in the
// order they were emitted.
func (s *sim) dispatch() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.events:
			fn()
		}
	}
}

func (s *sim) run() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			ended := s.playing && s.position() >= s.duration
			if ended {
				s.playing = false
				s.offset = s.duration
			}
			s.mu.Unlock()
			if ended {
				s.emitState(StateEnded)
			}
		}
	}
}

// position returns elapsed seconds. Callers hold s.mu.
func (s *sim) position() float64 {
	if !s.playing {
		return s.offset
	}
	return s.offset + time.Since(s.startedAt).Seconds()
}

func (s *sim) Play() error {
	s.mu.Lock()
	if !s.loaded || s.playing {
		s.mu.Unlock()
		return nil
	}
	s.playing = true
	s.startedAt = time.Now()
	s.mu.Unlock()
	s.emitState(StatePlaying)
	return nil
}

func (s *sim) Pause() error {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return nil
	}
	s.offset = s.position()
	s.playing = false
	s.mu.Unlock()
	s.emitState(StatePaused)
	return nil
}

func (s *sim) LoadMediaByID(id string) error {
	s.mu.Lock()
	s.loaded = true
	s.offset = 0
	s.playing = true
	s.startedAt = time.Now()
	s.duration = simDuration(id)
	s.mu.Unlock()
	s.emitState(StatePlaying)
	return nil
}

func (s *sim) CueMediaByID(id string) error {
	s.mu.Lock()
	s.loaded = true
	s.offset = 0
	s.playing = false
	s.duration = simDuration(id)
	s.mu.Unlock()
	s.emitState(StateCued)
	return nil
}

func (s *sim) SeekTo(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if seconds > s.duration {
		seconds = s.duration
	}
	s.offset = seconds
	s.startedAt = time.Now()
	return nil
}

func (s *sim) SetVolume(v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
	return nil
}

func (s *sim) CurrentTime() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position(), nil
}

func (s *sim) Duration() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, nil
}

func (s *sim) Destroy() error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return nil
	}
	s.destroyed = true
	close(s.done)
	s.mu.Unlock()
	return nil
}

// Callbacks are asynchronous to the caller, matching the real embed,
// but go through the single dispatcher to preserve emission order.
func (s *sim) emitReady() {
	if s.ev.OnReady != nil {
		s.enqueue(s.ev.OnReady)
	}
}

func (s *sim) emitState(st State) {
	if s.ev.OnStateChange != nil {
		s.enqueue(func() { s.ev.OnStateChange(st) })
	}
}

func (s *sim) enqueue(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

// simDuration derives a stable fake track length from the media ID.
func simDuration(id string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return float64(90 + h.Sum32()%180)
}
