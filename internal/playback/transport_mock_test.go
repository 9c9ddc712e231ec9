package playback

import (
	"sync"

	"github.com/lowfield/chorus/internal/progress"
	"github.com/lowfield/chorus/internal/widget"
)

// fakeTransport records commands and exposes writable event channels.
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	current   float64

	loads   []string
	plays   int
	pauses  int
	seeks   []float64
	volumes []int

	destroyed bool

	readyCh    chan struct{}
	stateCh    chan widget.State
	progressCh chan progress.Update
	errorCh    chan widget.Error
}

var _ Transport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		connected:  true,
		readyCh:    make(chan struct{}, 1),
		stateCh:    make(chan widget.State, 16),
		progressCh: make(chan progress.Update, 16),
		errorCh:    make(chan widget.Error, 16),
	}
}

func (f *fakeTransport) Load(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, id)
}

func (f *fakeTransport) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
}

func (f *fakeTransport) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
}

func (f *fakeTransport) Seek(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
}

func (f *fakeTransport) SetVolume(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
}

func (f *fakeTransport) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeTransport) Ready() <-chan struct{}           { return f.readyCh }
func (f *fakeTransport) States() <-chan widget.State      { return f.stateCh }
func (f *fakeTransport) Progress() <-chan progress.Update { return f.progressCh }
func (f *fakeTransport) Errors() <-chan widget.Error      { return f.errorCh }

func (f *fakeTransport) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
}

func (f *fakeTransport) setPosition(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = seconds
}

func (f *fakeTransport) setConnected(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = v
}

func (f *fakeTransport) loadCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.loads))
	copy(out, f.loads)
	return out
}

func (f *fakeTransport) seekCalls() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, len(f.seeks))
	copy(out, f.seeks)
	return out
}

func (f *fakeTransport) volumeCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.volumes))
	copy(out, f.volumes)
	return out
}

func (f *fakeTransport) playCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func (f *fakeTransport) pauseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauses
}

// memVolumeStore is an in-memory VolumeStore.
type memVolumeStore struct {
	mu    sync.Mutex
	v     int
	saves int
}

func (s *memVolumeStore) Volume() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v, nil
}

func (s *memVolumeStore) SetVolume(v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	s.saves++
	return nil
}
