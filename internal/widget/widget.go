// Package widget wraps the external embeddable media player behind an
// adapter. The underlying widget is an opaque dependency: a bootstrap
// script loaded once per process, a constructor bound to a mount point,
// and an imperative command surface with asynchronous callbacks.
package widget

// State mirrors the external widget's numeric playback states.
type State int

const (
	StateUnstarted State = -1
	StateEnded     State = 0
	StatePlaying   State = 1
	StatePaused    State = 2
	StateBuffering State = 3
	StateCued      State = 5
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "Unstarted"
	case StateEnded:
		return "Ended"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateBuffering:
		return "Buffering"
	case StateCued:
		return "Cued"
	default:
		return "Unknown"
	}
}

// Widget is the imperative surface of one live player instance. Any
// method may fail; the Adapter guards every call and converts failures
// into typed error events.
type Widget interface {
	Play() error
	Pause() error
	LoadMediaByID(externalID string) error
	CueMediaByID(externalID string) error
	SeekTo(seconds float64) error
	SetVolume(volume int) error
	CurrentTime() (float64, error)
	Duration() (float64, error)
	Destroy() error
}

// Events are the callbacks a widget instance delivers. Handlers run on
// the widget's delivery goroutine, in emission order.
type Events struct {
	OnReady       func()
	OnStateChange func(s State)
	OnError       func(nativeCode int)
}

// Factory constructs widget instances against a mount point once the
// bootstrap script has signalled availability.
type Factory interface {
	New(mount string, ev Events) (Widget, error)
}

// Bootstrap fetches and initializes the external widget's script.
type Bootstrap interface {
	Load() error
}
