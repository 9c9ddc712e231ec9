// Package ui provides the terminal player bar built on Bubble Tea.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/download"
	"github.com/lowfield/chorus/internal/playback"
)

// Model is the Bubble Tea model for the player.
type Model struct {
	controller *playback.Controller
	catalog    *catalog.Catalog
	downloads  *download.Manager
	sub        *playback.Subscription

	session playback.Session

	// Search overlay state
	searching     bool
	searchInput   textinput.Model
	searchResults []catalog.Track
	searchCursor  int

	statusMsg string

	width  int
	height int
}

// New creates the player model. The subscription is owned by the model
// and closed by the controller on shutdown.
func New(c *playback.Controller, cat *catalog.Catalog, dl *download.Manager) Model {
	ti := textinput.New()
	ti.Placeholder = "Search title or artist..."
	ti.CharLimit = 128
	ti.Width = 40

	return Model{
		controller:  c,
		catalog:     cat,
		downloads:   dl,
		sub:         c.Subscribe(),
		session:     c.Session(),
		searchInput: ti,
	}
}

// selectedResult returns the search result under the cursor, or nil.
func (m Model) selectedResult() *catalog.Track {
	if !m.searching || len(m.searchResults) == 0 || m.searchCursor >= len(m.searchResults) {
		return nil
	}
	return &m.searchResults[m.searchCursor]
}

// refreshResults re-runs the search for the current input text.
func (m *Model) refreshResults() {
	m.searchResults = m.catalog.Search(m.searchInput.Value())
	if m.searchCursor >= len(m.searchResults) {
		m.searchCursor = 0
	}
}

// openSearch enters search mode with a cleared input.
func (m *Model) openSearch() {
	m.searching = true
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.searchResults = nil
	m.searchCursor = 0
}

// closeSearch leaves search mode.
func (m *Model) closeSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.searchResults = nil
	m.searchCursor = 0
}
