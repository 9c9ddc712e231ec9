//go:build !linux

package notify

// New returns a no-op notifier on non-Linux platforms. Desktop
// notifications are only supported on Linux via D-Bus.
func New() (Notifier, error) {
	return &stubNotifier{}, nil
}
