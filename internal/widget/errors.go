package widget

import "fmt"

// Adapter error codes. Codes below 100 are reserved for the underlying
// widget's native error events, which pass through verbatim.
const (
	CodeScriptLoad   = 100 // bootstrap script failed to load
	CodeBootstrap    = 101 // unexpected failure during bootstrap
	CodeConstruction = 102 // construction failed after all retries
	CodeReadyHandler = 103 // failure inside the ready handler
	CodeStateHandler = 104 // failure inside the state-change handler
	CodeLoadMedia    = 105 // failure loading a media item
	CodePlayState    = 106 // failure changing play/pause state
)

// Error is a typed playback error surfaced as an event. The transport
// layer never receives raw errors from the widget, only these.
type Error struct {
	Code int
	Err  error
}

func (e Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("widget error %d", e.Code)
	}
	return fmt.Sprintf("widget error %d: %v", e.Code, e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Fatal returns true for errors that leave the adapter unusable.
func (e Error) Fatal() bool {
	switch e.Code {
	case CodeScriptLoad, CodeBootstrap, CodeConstruction:
		return true
	}
	return false
}
