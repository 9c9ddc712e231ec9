package catalog

// Track is an immutable catalog entry. The playback controller references
// tracks, it never mutates them.
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Album           string `json:"album"`
	DurationLabel   string `json:"duration"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ExternalMediaID string `json:"external_media_id"`
}

// Playable returns true if the track can be handed to the media widget.
func (t Track) Playable() bool {
	return t.ExternalMediaID != ""
}
