package playback

import "github.com/lowfield/chorus/internal/catalog"

// Session is a point-in-time snapshot of the playback state. The
// controller owns the live state; snapshots are copies handed to the
// UI and bridges.
type Session struct {
	CurrentTrack          *catalog.Track
	IsPlaying             bool
	Volume                int // 0..100, persisted across runs
	ProgressPercent       float64
	CurrentTimeSeconds    float64
	DurationSeconds       float64
	ShuffleEnabled        bool
	RepeatMode            RepeatMode
	Queue                 []catalog.Track
	NextUp                *catalog.Track // queue head, nil when empty
	BackgroundPlayEnabled bool
}
