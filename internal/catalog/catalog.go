// Package catalog holds the ambient ordered track list ("trending") that
// next/previous resolution falls back to when the user queue is empty.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Catalog is an ordered, read-only list of browsable tracks.
type Catalog struct {
	tracks []Track
	byID   map[string]int
}

// New creates a catalog from the given tracks, preserving order.
func New(tracks []Track) *Catalog {
	c := &Catalog{
		tracks: make([]Track, len(tracks)),
		byID:   make(map[string]int, len(tracks)),
	}
	copy(c.tracks, tracks)
	for i, t := range c.tracks {
		if _, dup := c.byID[t.ID]; !dup {
			c.byID[t.ID] = i
		}
	}
	return c
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var tracks []Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(tracks), nil
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Track returns the track at index, or nil if out of range.
func (c *Catalog) Track(index int) *Track {
	if index < 0 || index >= len(c.tracks) {
		return nil
	}
	t := c.tracks[index]
	return &t
}

// IndexOf returns the catalog index of a track ID, or -1 if absent.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

// Tracks returns a copy of all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	return slices.Clone(c.tracks)
}
