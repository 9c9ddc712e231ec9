package ui

import "github.com/charmbracelet/lipgloss"

var (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	filledBlock = "━"
	emptyBlock  = "─"
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var titleStyle = lipgloss.NewStyle().Bold(true)

var artistStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("245"))

var timeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("245"))

var modeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("141"))

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214"))

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

var cursorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("69"))

var progressFilledStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("69"))

var progressEmptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))
