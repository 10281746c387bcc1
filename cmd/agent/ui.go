package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	stateStyles = map[string]lipgloss.Style{
		"running": okStyle,
		"paused":  warnStyle,
		"idle":    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

func renderState(state string) string {
	if style, ok := stateStyles[state]; ok {
		return style.Render(state)
	}
	return state
}

func renderRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

func renderStatus(s statusPayload) string {
	out := titleStyle.Render("Tracker") + "\n"
	out += renderRow("State", renderState(s.State)) + "\n"
	out += renderRow("Elapsed", formatDuration(s.ElapsedSeconds)) + "\n"
	out += renderRow("Screenshots", fmt.Sprintf("%d", s.ScreenshotCount)) + "\n"
	if s.SessionID != nil {
		out += renderRow("Session", *s.SessionID) + "\n"
	}
	if s.LastScreenshotAt != nil {
		out += renderRow("Last capture", *s.LastScreenshotAt) + "\n"
	}
	if s.InactivityWarned {
		out += warnStyle.Render("No recent input detected") + "\n"
	}
	return out
}
