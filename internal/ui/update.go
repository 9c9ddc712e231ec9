package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lowfield/chorus/internal/download"
	"github.com/lowfield/chorus/internal/playback"
)

// Compile-time check that Model implements tea.Model.
var _ tea.Model = Model{}

// sessionMsg carries a fresh controller snapshot after any playback event.
type sessionMsg struct {
	session playback.Session
}

// playbackErrMsg carries a widget error surfaced by the controller.
type playbackErrMsg struct {
	err error
}

// ackMsg carries a download acknowledgment.
type ackMsg struct {
	ack download.Ack
}

// doneMsg signals that the controller shut down.
type doneMsg struct{}

// listenEvents waits for the next playback event and folds it into a
// session refresh. Re-issued after every delivery.
func listenEvents(c *playback.Controller, sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-sub.Done:
			return doneMsg{}
		case <-sub.TrackChanged:
		case <-sub.StateChanged:
		case <-sub.ProgressChanged:
		case <-sub.ModeChanged:
		case <-sub.QueueChanged:
		case <-sub.VolumeChanged:
		case e := <-sub.Error:
			return playbackErrMsg{err: e.Err}
		}
		return sessionMsg{session: c.Session()}
	}
}

// listenAcks waits for the next download acknowledgment.
func listenAcks(dl *download.Manager) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-dl.Events()
		if !ok {
			return doneMsg{}
		}
		return ackMsg{ack: a}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenEvents(m.controller, m.sub),
		listenAcks(m.downloads),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionMsg:
		m.session = msg.session
		return m, listenEvents(m.controller, m.sub)

	case playbackErrMsg:
		m.statusMsg = "playback error: " + msg.err.Error()
		m.session = m.controller.Session()
		return m, listenEvents(m.controller, m.sub)

	case ackMsg:
		m.statusMsg = msg.ack.Label()
		return m, listenAcks(m.downloads)

	case doneMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes transport keys outside of search mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.controller.TogglePlay()
	case "n":
		m.controller.Next()
	case "p":
		m.controller.Previous()
	case "s":
		m.controller.ToggleShuffle()
	case "r":
		m.controller.CycleRepeatMode()
	case "b":
		m.controller.ToggleBackgroundPlay()
	case "+", "=":
		m.controller.SetVolume(m.controller.Volume() + 5)
	case "-":
		m.controller.SetVolume(m.controller.Volume() - 5)
	case "right":
		m.seekBy(5)
	case "left":
		m.seekBy(-5)
	case "c":
		m.controller.ClearQueue()
		m.statusMsg = "queue cleared"
	case "d":
		if t := m.session.CurrentTrack; t != nil {
			m.downloads.Request(*t, download.FormatMP3)
		}
	case "/":
		m.openSearch()
	}
	return m, nil
}

// updateSearch processes keys while the search overlay is open.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "up":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil
	case "down":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil
	case "enter":
		if t := m.selectedResult(); t != nil {
			m.controller.PlayTrack(*t)
			m.closeSearch()
		}
		return m, nil
	case "tab":
		if t := m.selectedResult(); t != nil {
			m.controller.Enqueue(*t)
			m.statusMsg = "queued: " + t.Title
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshResults()
	return m, cmd
}

// seekBy nudges playback by delta percent of the current track.
func (m Model) seekBy(delta float64) {
	m.controller.SeekPercent(m.session.ProgressPercent + delta)
}
