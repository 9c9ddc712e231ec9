package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Channels are
// buffered; a slow subscriber drops events rather than stalling the
// controller.
type Subscription struct {
	TrackChanged    <-chan TrackChange
	StateChanged    <-chan StateChange
	ProgressChanged <-chan ProgressChange
	ModeChanged     <-chan ModeChange
	QueueChanged    <-chan QueueChange
	VolumeChanged   <-chan VolumeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	trackCh    chan TrackChange
	stateCh    chan StateChange
	progressCh chan ProgressChange
	modeCh     chan ModeChange
	queueCh    chan QueueChange
	volumeCh   chan VolumeChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		trackCh:    make(chan TrackChange, eventBufferSize),
		stateCh:    make(chan StateChange, eventBufferSize),
		progressCh: make(chan ProgressChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		volumeCh:   make(chan VolumeChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.TrackChanged = s.trackCh
	s.StateChanged = s.stateCh
	s.ProgressChanged = s.progressCh
	s.ModeChanged = s.modeCh
	s.QueueChanged = s.queueCh
	s.VolumeChanged = s.volumeCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendProgress(e ProgressChange) {
	select {
	case s.progressCh <- e:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}

func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

func (s *Subscription) sendVolume(e VolumeChange) {
	select {
	case s.volumeCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
