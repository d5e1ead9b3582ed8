package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/announce-monitor/internal/model"
)

// styleEvent applies level coloring to a single event line
func styleEvent(ev model.Event, maxWidth int) string {
	timestamp := timestampStyle.Render(ev.Timestamp.Format("15:04:05"))

	var style lipgloss.Style
	switch ev.Level {
	case model.EventNotify:
		style = notifyEventStyle
	case model.EventError:
		style = errorEventStyle
	default:
		style = infoEventStyle
	}

	line := timestamp + " " + style.Render(ev.Message)

	// Truncate if needed (accounting for ANSI codes)
	if lipgloss.Width(line) > maxWidth {
		overhead := lipgloss.Width(timestamp) + 5 // space + "..."
		keepLength := maxWidth - overhead
		if keepLength > 0 {
			line = timestamp + " " + style.Render(truncateRunes(ev.Message, keepLength)) + "..."
		}
	}

	return line
}

// truncateRunes cuts a plain string to a maximum rune count
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
