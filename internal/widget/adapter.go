package widget

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowfield/chorus/internal/progress"
)

const (
	maxConstructAttempts = 3
	constructRetryDelay  = time.Second
	eventBufferSize      = 16
)

// Adapter owns exactly one live widget instance per mount point and is
// the only component issuing commands against it. All widget-call
// failures are converted to Error events; callers never see raw
// errors or panics from the underlying widget.
type Adapter struct {
	mu      sync.Mutex
	loader  *Loader
	factory Factory
	mount   string

	w             Widget
	tracker       *progress.Tracker
	desiredVolume int
	destroyed     bool
	retryDelay    time.Duration

	done chan struct{}

	readyCh    chan struct{}
	stateCh    chan State
	progressCh chan progress.Update
	errorCh    chan Error
}

// NewAdapter creates an adapter for the given mount point. Initialize
// must be called before any command has an effect.
func NewAdapter(loader *Loader, factory Factory, mount string) *Adapter {
	a := &Adapter{
		loader:        loader,
		factory:       factory,
		mount:         mount,
		desiredVolume: 80,
		retryDelay:    constructRetryDelay,
		done:          make(chan struct{}),
		readyCh:       make(chan struct{}, 1),
		stateCh:       make(chan State, eventBufferSize),
		progressCh:    make(chan progress.Update, eventBufferSize),
		errorCh:       make(chan Error, eventBufferSize),
	}
	a.tracker = progress.New(a.emitProgress)
	return a
}

// Ready delivers one signal when the widget becomes usable.
func (a *Adapter) Ready() <-chan struct{} { return a.readyCh }

// States delivers widget state transitions in emission order.
func (a *Adapter) States() <-chan State { return a.stateCh }

// Progress delivers position samples while playback is active.
func (a *Adapter) Progress() <-chan progress.Update { return a.progressCh }

// Errors delivers typed widget errors.
func (a *Adapter) Errors() <-chan Error { return a.errorCh }

// Initialize loads the bootstrap script and constructs the widget
// instance in the background. Construction is retried up to
// maxConstructAttempts with a fixed delay; the pending retry is
// canceled by Destroy.
func (a *Adapter) Initialize() {
	go func() {
		if err := a.loader.Load(); err != nil {
			if werr, ok := err.(Error); ok {
				a.emitError(werr)
			} else {
				a.emitError(Error{Code: CodeBootstrap, Err: err})
			}
			return
		}
		a.construct()
	}()
}

func (a *Adapter) construct() {
	var lastErr error
	for attempt := 1; attempt <= maxConstructAttempts; attempt++ {
		w, err := a.tryConstruct()
		if err == nil {
			a.mu.Lock()
			if a.destroyed {
				a.mu.Unlock()
				_ = w.Destroy()
				return
			}
			a.w = w
			a.mu.Unlock()
			return
		}
		lastErr = err
		logrus.WithError(err).WithField("attempt", attempt).Warn("widget construction failed")

		if attempt == maxConstructAttempts {
			break
		}
		timer := time.NewTimer(a.retryDelay)
		select {
		case <-timer.C:
		case <-a.done:
			timer.Stop()
			return
		}
	}
	a.emitError(Error{Code: CodeConstruction, Err: lastErr})
}

func (a *Adapter) tryConstruct() (w Widget, err error) {
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("constructor panic: %v", r)
		}
	}()
	return a.factory.New(a.mount, Events{
		OnReady:       a.handleReady,
		OnStateChange: a.handleStateChange,
		OnError:       a.handleNativeError,
	})
}

// Connected reports whether the widget instance is live.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.w != nil && !a.destroyed
}

// handleReady applies the desired volume, starts progress polling and
// then announces readiness. Failures surface as code 103.
func (a *Adapter) handleReady() {
	defer a.guard(CodeReadyHandler)

	a.mu.Lock()
	w := a.w
	vol := a.desiredVolume
	a.mu.Unlock()
	if w == nil {
		return
	}

	// Volume is best-effort; a failed set is not an event.
	if err := w.SetVolume(vol); err != nil {
		logrus.WithError(err).Debug("initial volume set failed")
	}

	a.tracker.Start(w)

	select {
	case a.readyCh <- struct{}{}:
	default:
	}
}

// handleStateChange translates widget state transitions and drives
// the poller. Failures surface as code 104.
func (a *Adapter) handleStateChange(s State) {
	defer a.guard(CodeStateHandler)

	a.mu.Lock()
	w := a.w
	a.mu.Unlock()

	switch s {
	case StatePlaying:
		if w != nil {
			a.tracker.Start(w)
		}
	case StatePaused, StateEnded:
		a.tracker.Stop()
	}

	select {
	case a.stateCh <- s:
	default:
	}
}

func (a *Adapter) handleNativeError(code int) {
	a.emitError(Error{Code: code})
}

// Load cues and plays a media item. Failures surface as code 105.
func (a *Adapter) Load(externalID string) {
	a.mu.Lock()
	w := a.w
	a.mu.Unlock()
	if w == nil {
		return
	}
	if err := callGuarded(func() error { return w.LoadMediaByID(externalID) }); err != nil {
		a.emitError(Error{Code: CodeLoadMedia, Err: err})
	}
}

// Play resumes playback. Failures surface as code 106.
func (a *Adapter) Play() {
	a.playState(func(w Widget) error { return w.Play() })
}

// Pause suspends playback. Failures surface as code 106.
func (a *Adapter) Pause() {
	a.playState(func(w Widget) error { return w.Pause() })
}

// Seek moves the playhead. Failures surface as code 106.
func (a *Adapter) Seek(seconds float64) {
	a.playState(func(w Widget) error { return w.SeekTo(seconds) })
}

func (a *Adapter) playState(cmd func(Widget) error) {
	a.mu.Lock()
	w := a.w
	a.mu.Unlock()
	if w == nil {
		return
	}
	if err := callGuarded(func() error { return cmd(w) }); err != nil {
		a.emitError(Error{Code: CodePlayState, Err: err})
	}
}

// SetVolume records the desired volume and forwards it if the widget
// is live. Forwarding failures are swallowed: volume is best-effort.
func (a *Adapter) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	} else if volume > 100 {
		volume = 100
	}

	a.mu.Lock()
	a.desiredVolume = volume
	w := a.w
	a.mu.Unlock()
	if w == nil {
		return
	}
	if err := callGuarded(func() error { return w.SetVolume(volume) }); err != nil {
		logrus.WithError(err).Debug("volume set failed")
	}
}

// CurrentTime reads the live playhead position in seconds.
func (a *Adapter) CurrentTime() (float64, error) {
	a.mu.Lock()
	w := a.w
	a.mu.Unlock()
	if w == nil {
		return 0, fmt.Errorf("widget not connected")
	}
	return w.CurrentTime()
}

// Duration reads the live track duration in seconds.
func (a *Adapter) Duration() (float64, error) {
	a.mu.Lock()
	w := a.w
	a.mu.Unlock()
	if w == nil {
		return 0, fmt.Errorf("widget not connected")
	}
	return w.Duration()
}

// Destroy tears the adapter down: the poll timer is stopped first,
// then the widget instance is destroyed. Each step runs even if the
// other fails, so no timer can leak past teardown. A pending
// construction retry is canceled.
func (a *Adapter) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	w := a.w
	a.w = nil
	close(a.done)
	a.mu.Unlock()

	func() {
		defer recoverLogged("tracker stop")
		a.tracker.Stop()
	}()

	if w != nil {
		func() {
			defer recoverLogged("widget destroy")
			if err := w.Destroy(); err != nil {
				logrus.WithError(err).Debug("widget destroy failed")
			}
		}()
	}
}

func (a *Adapter) emitProgress(u progress.Update) {
	select {
	case a.progressCh <- u:
	default:
	}
}

func (a *Adapter) emitError(e Error) {
	logrus.WithError(e.Err).WithField("code", e.Code).Warn("widget error")
	select {
	case a.errorCh <- e:
	default:
	}
}

// guard converts a handler panic into a typed error event.
func (a *Adapter) guard(code int) {
	if r := recover(); r != nil {
		a.emitError(Error{Code: code, Err: fmt.Errorf("handler panic: %v", r)})
	}
}

// callGuarded runs a widget command, converting panics to errors.
func callGuarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("widget panic: %v", r)
		}
	}()
	return fn()
}

func recoverLogged(step string) {
	if r := recover(); r != nil {
		logrus.WithField("step", step).Warnf("teardown panic: %v", r)
	}
}
