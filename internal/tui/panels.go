package tui

import (
	"fmt"
	"strings"
)

// renderSourcesPanel renders the per-source poll status panel
func (m Model) renderSourcesPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📡 Sources") + "\n\n")

	if len(m.statuses) == 0 {
		s.WriteString("Waiting for first poll...\n")
	}

	for _, st := range m.statuses {
		s.WriteString(sourceNameStyle.Render(st.Name) + "\n")

		if st.LastPoll.IsZero() {
			s.WriteString(dimStyle.Render("  not polled yet") + "\n")
			continue
		}

		s.WriteString(fmt.Sprintf("  last poll  %s\n", st.LastPoll.Format("15:04:05")))
		if st.LastError != nil {
			s.WriteString("  " + stoppedStyle.Render(truncate("error: "+st.LastError.Error(), width-10)) + "\n")
		} else {
			s.WriteString(fmt.Sprintf("  items      %d\n", st.LastCount))
		}
	}

	if m.message != "" {
		s.WriteString("\n" + m.message + "\n")
	}

	help := "\n[p] poll now  [q] quit"
	s.WriteString(helpStyle.Render(help))

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderContainersPanel renders the compose project container list
func (m Model) renderContainersPanel(width, height int) string {
	var s strings.Builder

	title := "🐳 Deployment"
	if m.project != "" {
		title += "  (" + m.project + ")"
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")

	if m.deploy == nil {
		s.WriteString(dimStyle.Render("Docker not available"))
		return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
	}

	if m.err != nil {
		s.WriteString(fmt.Sprintf("Error: %v\n", m.err))
		return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
	}

	if m.loading && len(m.containers) == 0 {
		s.WriteString("Loading...\n")
		return panelStyle.Width(width - 4).Height(height - 4).Render(s.String())
	}

	running := 0
	for _, c := range m.containers {
		if c.Running() {
			running++
		}
	}
	s.WriteString(fmt.Sprintf("%d total, %d running\n\n", len(m.containers), running))

	colWidth := width - 10
	nameWidth := int(float64(colWidth) * 0.3)
	serviceWidth := int(float64(colWidth) * 0.2)
	stateWidth := 10
	statusWidth := colWidth - nameWidth - serviceWidth - stateWidth

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "NAME",
		serviceWidth, "SERVICE",
		stateWidth, "STATE",
		statusWidth, "STATUS")
	s.WriteString(headerStyle.Render(header) + "\n")

	maxContainers := height - 12
	for i, container := range m.containers {
		if i >= maxContainers {
			break
		}

		name := truncate(container.Name, nameWidth)
		service := truncate(container.Service, serviceWidth)

		var stateStr string
		if container.Running() {
			stateStr = runningStyle.Render("running")
		} else {
			stateStr = stoppedStyle.Render(container.State)
		}

		status := truncate(container.Status, statusWidth)

		line := fmt.Sprintf(
			"%-*s %-*s %-*s %-*s",
			nameWidth, name,
			serviceWidth, service,
			stateWidth+10, stateStr, // Account for ANSI codes
			statusWidth, status,
		)

		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	help := "\n[↑/k] up  [↓/j] down  [s] start  [x] stop  [r] restart  [R] restart project  [l] logs"
	s.WriteString(helpStyle.Render(help))

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderAnnouncementsPanel renders the recent announcement history
func (m Model) renderAnnouncementsPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📢 Announcements") + "\n\n")

	if len(m.announcements) == 0 {
		s.WriteString(dimStyle.Render("No announcements yet..."))
	} else {
		maxLines := height - 8
		if maxLines < 1 {
			maxLines = 1
		}
		maxWidth := width - 8

		for i, a := range m.announcements {
			if i >= maxLines {
				break
			}
			line := fmt.Sprintf("%s %s %s",
				timestampStyle.Render(a.Date),
				sourceNameStyle.Render(a.Source),
				a.Title)
			s.WriteString(truncate(line, maxWidth+20) + "\n") // ANSI overhead
		}
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderEventsPanel renders the monitor event log, or a container log
// stream when one is toggled on
func (m Model) renderEventsPanel(width, height int) string {
	if m.logsFor != "" {
		return m.renderContainerLogsPanel(width, height)
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Event Log") + "\n")

	autoFollowIndicator := ""
	if m.eventsAutoFollow {
		autoFollowIndicator = " [Follow: ON]"
	}
	s.WriteString(dimStyle.Render(autoFollowIndicator) + "\n\n")

	if len(m.events) == 0 {
		s.WriteString(dimStyle.Render("No events yet..."))
	} else {
		visibleLines := height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}

		totalEvents := len(m.events)
		start := m.eventsScroll
		end := start + visibleLines

		if start < 0 {
			start = 0
		}
		if end > totalEvents {
			end = totalEvents
		}
		if start >= totalEvents {
			start = totalEvents - visibleLines
			if start < 0 {
				start = 0
			}
		}

		maxLineWidth := width - 8
		for i := start; i < end && i < totalEvents; i++ {
			s.WriteString(styleEvent(m.events[i], maxLineWidth) + "\n")
		}

		if totalEvents > visibleLines {
			s.WriteString(fmt.Sprintf("\n[%d/%d] PgUp/PgDown:scroll | a:toggle follow | c:clear",
				start+1, totalEvents))
		}
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderContainerLogsPanel renders the streamed logs of one container
func (m Model) renderContainerLogsPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📋 Logs: "+m.logsForName) + "\n")
	s.WriteString(dimStyle.Render(" [l] back to events") + "\n\n")

	if len(m.logs) == 0 {
		s.WriteString(dimStyle.Render("No logs yet..."))
	} else {
		visibleLines := height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}

		// Näytetään aina viimeisimmät rivit
		start := len(m.logs) - visibleLines
		if start < 0 {
			start = 0
		}

		maxLineWidth := width - 8
		for _, entry := range m.logs[start:] {
			line := timestampStyle.Render(entry.Timestamp.Format("15:04:05")) + " "
			if entry.Stream == "stderr" {
				line += errorEventStyle.Render(truncateRunes(entry.Message, maxLineWidth))
			} else {
				line += infoEventStyle.Render(truncateRunes(entry.Message, maxLineWidth))
			}
			s.WriteString(line + "\n")
		}
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}
