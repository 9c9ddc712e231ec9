package widget

import (
	"errors"
	"sync"
)

// Mock is a test double for the external widget instance.
type Mock struct {
	mu sync.Mutex

	ev Events

	current  float64
	duration float64

	loadErr   error
	playErr   error
	seekErr   error
	volumeErr error
	timeErr   error

	loadCalls   []string
	playCalls   int
	pauseCalls  int
	seekCalls   []float64
	volumeCalls []int
	destroyed   bool
}

// Verify Mock implements Widget at compile time.
var _ Widget = (*Mock)(nil)

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return m.playErr
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	return m.playErr
}

func (m *Mock) LoadMediaByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, id)
	return m.loadErr
}

func (m *Mock) CueMediaByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, id)
	return m.loadErr
}

func (m *Mock) SeekTo(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, seconds)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.current = seconds
	return nil
}

func (m *Mock) SetVolume(v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, v)
	return m.volumeErr
}

func (m *Mock) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.timeErr
}

func (m *Mock) Duration() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration, m.timeErr
}

func (m *Mock) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = true
	return nil
}

// Test helpers

func (m *Mock) SetPosition(cur, dur float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current, m.duration = cur, dur
}

func (m *Mock) SetLoadError(err error)   { m.mu.Lock(); defer m.mu.Unlock(); m.loadErr = err }
func (m *Mock) SetPlayError(err error)   { m.mu.Lock(); defer m.mu.Unlock(); m.playErr = err }
func (m *Mock) SetSeekError(err error)   { m.mu.Lock(); defer m.mu.Unlock(); m.seekErr = err }
func (m *Mock) SetVolumeError(err error) { m.mu.Lock(); defer m.mu.Unlock(); m.volumeErr = err }

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.loadCalls))
	copy(out, m.loadCalls)
	return out
}

func (m *Mock) PlayCalls() int  { m.mu.Lock(); defer m.mu.Unlock(); return m.playCalls }
func (m *Mock) PauseCalls() int { m.mu.Lock(); defer m.mu.Unlock(); return m.pauseCalls }

func (m *Mock) SeekCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.seekCalls))
	copy(out, m.seekCalls)
	return out
}

func (m *Mock) VolumeCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.volumeCalls))
	copy(out, m.volumeCalls)
	return out
}

func (m *Mock) Destroyed() bool { m.mu.Lock(); defer m.mu.Unlock(); return m.destroyed }

// EmitReady fires the ready callback as the real widget would.
func (m *Mock) EmitReady() {
	if m.ev.OnReady != nil {
		m.ev.OnReady()
	}
}

// EmitState fires a state-change callback.
func (m *Mock) EmitState(s State) {
	if m.ev.OnStateChange != nil {
		m.ev.OnStateChange(s)
	}
}

// EmitError fires a native error callback.
func (m *Mock) EmitError(code int) {
	if m.ev.OnError != nil {
		m.ev.OnError(code)
	}
}

// MockFactory constructs Mock widgets and can be scripted to fail a
// number of constructions first.
type MockFactory struct {
	mu       sync.Mutex
	failures int
	calls    int
	widgets  []*Mock
}

// Verify MockFactory implements Factory at compile time.
var _ Factory = (*MockFactory)(nil)

// NewMockFactory creates a factory whose first failures constructions
// return an error.
func NewMockFactory(failures int) *MockFactory {
	return &MockFactory{failures: failures}
}

func (f *MockFactory) New(_ string, ev Events) (Widget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("mock construction failure")
	}
	m := &Mock{ev: ev}
	f.widgets = append(f.widgets, m)
	return m, nil
}

// Calls returns how many constructions were attempted.
func (f *MockFactory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Widget returns the last constructed mock, or nil.
func (f *MockFactory) Widget() *Mock {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.widgets) == 0 {
		return nil
	}
	return f.widgets[len(f.widgets)-1]
}

// MockBootstrap is a scriptable Bootstrap.
type MockBootstrap struct {
	mu    sync.Mutex
	err   error
	panic bool
	calls int
}

func (b *MockBootstrap) Load() error {
	b.mu.Lock()
	b.calls++
	err := b.err
	shouldPanic := b.panic
	b.mu.Unlock()
	if shouldPanic {
		panic("mock bootstrap panic")
	}
	return err
}

func (b *MockBootstrap) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *MockBootstrap) SetError(err error) { b.mu.Lock(); defer b.mu.Unlock(); b.err = err }
func (b *MockBootstrap) SetPanic(p bool)    { b.mu.Lock(); defer b.mu.Unlock(); b.panic = p }
