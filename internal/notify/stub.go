package notify

// stubNotifier is a no-op notifier used when no notification service
// is reachable.
type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Permitted() bool {
	return false
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}
