package widget

import (
	"fmt"
	"sync"
)

// Loader runs a Bootstrap at most once, no matter how many adapters ask
// for it. The wiring creates a single Loader per process, which gives
// the external script its load-exactly-once guarantee; a failed load is
// cached and returned to every subsequent caller without re-fetching.
type Loader struct {
	bootstrap Bootstrap
	once      sync.Once
	err       error
}

// NewLoader creates a loader around the given bootstrap.
func NewLoader(b Bootstrap) *Loader {
	return &Loader{bootstrap: b}
}

// Load runs the bootstrap on first call and returns the cached outcome
// afterwards. Load failures surface as code 100, unexpected bootstrap
// panics as code 101.
func (l *Loader) Load() error {
	l.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				l.err = Error{Code: CodeBootstrap, Err: fmt.Errorf("bootstrap panic: %v", r)}
			}
		}()
		if err := l.bootstrap.Load(); err != nil {
			l.err = Error{Code: CodeScriptLoad, Err: err}
		}
	})
	return l.err
}
