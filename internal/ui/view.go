package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lowfield/chorus/internal/playback"
)

const minBarWidth = 10

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	if m.searching {
		b.WriteString(m.renderSearch())
		b.WriteString("\n")
	}
	b.WriteString(barStyle.Width(width - 2).Render(m.renderBar(width - 6)))
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

// renderBar draws the single-line transport bar.
func (m Model) renderBar(innerWidth int) string {
	s := m.session

	status := pauseSymbol
	if s.IsPlaying {
		status = playSymbol
	}

	title := "nothing playing"
	artist := ""
	if s.CurrentTrack != nil {
		title = s.CurrentTrack.Title
		artist = s.CurrentTrack.Artist
	}

	timeStr := fmt.Sprintf("%s / %s",
		formatSeconds(s.CurrentTimeSeconds),
		formatSeconds(s.DurationSeconds))
	volStr := fmt.Sprintf("vol %3d%%", s.Volume)

	left := status + "  " + titleStyle.Render(title)
	if artist != "" {
		left += "  " + artistStyle.Render(artist)
	}
	right := timeStyle.Render(timeStr) + "  " + timeStyle.Render(volStr)
	if flags := m.modeFlags(); flags != "" {
		right += "  " + modeStyle.Render(flags)
	}

	barWidth := innerWidth - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if barWidth < minBarWidth {
		return left + "  " + right
	}

	filled := int(float64(barWidth) * s.ProgressPercent / 100)
	filled = min(filled, barWidth)
	bar := progressFilledStyle.Render(strings.Repeat(filledBlock, filled)) +
		progressEmptyStyle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return left + "  " + bar + "  " + right
}

// renderSearch draws the search overlay with up to five matches.
func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	for i, t := range m.searchResults {
		b.WriteString("\n")
		line := fmt.Sprintf("%s  %s", t.Title, artistStyle.Render(t.Artist))
		if i == m.searchCursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
	}
	if len(m.searchResults) == 0 && strings.TrimSpace(m.searchInput.Value()) != "" {
		b.WriteString("\n" + helpStyle.Render("  no matches"))
	}
	return b.String()
}

// modeFlags returns the short indicator string for active modes.
func (m Model) modeFlags() string {
	var flags []string
	if m.session.ShuffleEnabled {
		flags = append(flags, "shuffle")
	}
	switch m.session.RepeatMode {
	case playback.RepeatAll:
		flags = append(flags, "repeat")
	case playback.RepeatOne:
		flags = append(flags, "repeat-one")
	}
	if m.session.BackgroundPlayEnabled {
		flags = append(flags, "bg")
	}
	if n := len(m.session.Queue); n > 0 {
		flags = append(flags, fmt.Sprintf("queue:%d", n))
		if t := m.session.NextUp; t != nil {
			flags = append(flags, "next: "+t.Title)
		}
	}
	return strings.Join(flags, " ")
}

// helpLine lists the key bindings.
func (m Model) helpLine() string {
	if m.searching {
		return "enter play · tab queue · esc close"
	}
	return "space play/pause · n next · p prev · s shuffle · r repeat · b background · / search · c clear queue · d download · q quit"
}

// formatSeconds renders seconds as m:ss (or h:mm:ss above an hour).
func formatSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	h := total / 3600
	mn := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mn, s)
	}
	return fmt.Sprintf("%d:%02d", mn, s)
}
