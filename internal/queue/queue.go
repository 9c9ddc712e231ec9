// Package queue implements the user-curated up-next list. It is distinct
// from the ambient catalog: the playback controller always drains this
// queue before falling back to catalog-order resolution.
package queue

import "github.com/lowfield/chorus/internal/catalog"

// Queue is an ordered FIFO list of upcoming tracks. Insertion order is
// play order; dequeue is destructive.
type Queue struct {
	tracks []catalog.Track
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends a track to the tail. Duplicates are allowed; a track
// may appear any number of times.
func (q *Queue) Enqueue(track catalog.Track) {
	q.tracks = append(q.tracks, track)
}

// DequeueNext removes and returns the head track. Returns nil if the
// queue is empty.
func (q *Queue) DequeueNext() *catalog.Track {
	if len(q.tracks) == 0 {
		return nil
	}
	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return &head
}

// Peek returns the head track without removing it, or nil if empty.
func (q *Queue) Peek() *catalog.Track {
	if len(q.tracks) == 0 {
		return nil
	}
	head := q.tracks[0]
	return &head
}

// Clear removes all tracks.
func (q *Queue) Clear() {
	q.tracks = nil
}

// Tracks returns a copy of all queued tracks in play order.
func (q *Queue) Tracks() []catalog.Track {
	out := make([]catalog.Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}
