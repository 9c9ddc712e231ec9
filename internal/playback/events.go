package playback

import (
	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/widget"
)

// TrackChange is emitted when playback starts on a different track.
// Queue edits and pause/stop do not emit it. Bridges handle all
// track-related side effects (window title, notifications) in
// response to this event.
type TrackChange struct {
	Previous *catalog.Track
	Current  *catalog.Track
}

// StateChange is emitted when playback starts or stops.
type StateChange struct {
	Playing bool
}

// ProgressChange is emitted once per poll tick while playing.
type ProgressChange struct {
	Percent  float64
	Current  float64 // seconds
	Duration float64 // seconds
}

// ModeChange is emitted when shuffle, repeat or background play flips.
type ModeChange struct {
	RepeatMode     RepeatMode
	Shuffle        bool
	BackgroundPlay bool
}

// QueueChange is emitted when the up-next queue contents change.
type QueueChange struct {
	Tracks []catalog.Track
}

// VolumeChange is emitted when the volume is set.
type VolumeChange struct {
	Volume int
}

// ErrorEvent carries a widget error for UI surfacing.
type ErrorEvent struct {
	Err widget.Error
}
