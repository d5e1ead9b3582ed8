package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/announce-monitor/internal/model"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.logsCancel != nil {
				m.logsCancel()
			}
			return m, tea.Quit

		case "l":
			// Toggle container log view in the bottom-right panel
			if m.logsCancel != nil {
				m.stopLogStream()
				return m, nil
			}
			if m.deploy != nil && len(m.containers) > 0 {
				container := m.containers[m.cursor]
				m.logsFor = container.ID
				m.logsForName = container.Name
				m.logs = nil

				logsChan, errChan, cancel := m.deploy.StreamContainerLogs(container.ID)
				m.logsChan = logsChan
				m.logsErrChan = errChan
				m.logsCancel = cancel
				return m, tea.Batch(
					fetchLogTail(m.deploy, container.ID),
					waitForLogs(logsChan, errChan),
				)
			}

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.containers)-1 {
				m.cursor++
			}

		case "p":
			// Välitön pollauskierros
			m.message = "Polling..."
			m.mon.TriggerPoll()

		case "pgup":
			if m.eventsScroll > 0 {
				visibleLines := m.calculateVisibleEventLines()
				scrollAmount := visibleLines / 2
				if scrollAmount < 1 {
					scrollAmount = 1
				}
				m.eventsScroll -= scrollAmount
				if m.eventsScroll < 0 {
					m.eventsScroll = 0
				}
				m.eventsAutoFollow = false
			}

		case "pgdown":
			visibleLines := m.calculateVisibleEventLines()
			maxScroll := m.calculateMaxScroll()
			scrollAmount := visibleLines / 2
			if scrollAmount < 1 {
				scrollAmount = 1
			}
			m.eventsScroll += scrollAmount
			if m.eventsScroll >= maxScroll {
				m.eventsScroll = maxScroll
				m.eventsAutoFollow = true
			}

		case "a":
			// Toggle auto-follow
			m.eventsAutoFollow = !m.eventsAutoFollow
			if m.eventsAutoFollow {
				m.eventsScroll = m.calculateMaxScroll()
			}

		case "c":
			// Clear the event log
			m.events = []model.Event{}
			m.eventsScroll = 0

		case "s":
			if m.deploy != nil && len(m.containers) > 0 {
				return m, startContainer(m.deploy, m.containers[m.cursor].ID, m.containers[m.cursor].Name)
			}

		case "x":
			if m.deploy != nil && len(m.containers) > 0 {
				return m, stopContainer(m.deploy, m.containers[m.cursor].ID, m.containers[m.cursor].Name)
			}

		case "r":
			if m.deploy != nil && len(m.containers) > 0 {
				return m, restartContainer(m.deploy, m.containers[m.cursor].ID, m.containers[m.cursor].Name)
			}

		case "R":
			if m.deploy != nil && m.project != "" {
				m.message = "Restarting project..."
				return m, restartProject(m.deploy, m.project)
			}
		}

	case tickMsg:
		// Lähteiden tilat luetaan suoraan monitorilta joka tickillä
		m.statuses = m.mon.Statuses()
		cmds := []tea.Cmd{fetchAnnouncements(m.store), tickCmd()}
		if m.deploy != nil {
			cmds = append(cmds, fetchContainers(m.deploy, m.project))
		}
		return m, tea.Batch(cmds...)

	case containersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.containers = msg.containers
		if m.cursor >= len(m.containers) && len(m.containers) > 0 {
			m.cursor = len(m.containers) - 1
		}

	case announcementsMsg:
		if msg.err == nil {
			m.announcements = msg.announcements
		}

	case eventMsg:
		if !msg.ok {
			// Monitor pysähtyi, kanava sulkeutui
			return m, nil
		}
		m.events = append(m.events, msg.event)
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
		if m.eventsAutoFollow {
			m.eventsScroll = m.calculateMaxScroll()
		}
		return m, waitForEvent(m.mon.Events())

	case logTailMsg:
		if msg.err == nil && m.logsFor != "" && len(m.logs) == 0 {
			m.logs = msg.entries
		}

	case logsMsg:
		if m.logsFor == "" {
			return m, nil
		}
		if msg.err != nil {
			m.message = fmt.Sprintf("Logs error: %v", msg.err)
			return m, nil
		}
		if !msg.ok {
			// Stream sulkeutui (container pysähtyi)
			m.stopLogStream()
			return m, nil
		}
		if msg.entry.Message != "" {
			m.logs = append(m.logs, msg.entry)
			if len(m.logs) > maxEvents {
				m.logs = m.logs[len(m.logs)-maxEvents:]
			}
		}
		return m, waitForLogs(m.logsChan, m.logsErrChan)

	case actionMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.message = msg.message
		}
		if m.deploy != nil {
			return m, fetchContainers(m.deploy, m.project)
		}
	}

	return m, nil
}

// stopLogStream closes the log stream and falls back to the event log
func (m *Model) stopLogStream() {
	if m.logsCancel != nil {
		m.logsCancel()
	}
	m.logsCancel = nil
	m.logsChan = nil
	m.logsErrChan = nil
	m.logsFor = ""
	m.logsForName = ""
	m.logs = nil
}
