package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/announce-monitor/internal/deploy"
	"github.com/rusenback/announce-monitor/internal/model"
	"github.com/rusenback/announce-monitor/internal/storage"
)

// tickCmd creates a command that sends a tick message every 2 seconds
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchContainers creates a command to fetch the compose project containers
func fetchContainers(client deploy.DeployClient, project string) tea.Cmd {
	return func() tea.Msg {
		containers, err := client.ListProjectContainers(project)
		return containersMsg{containers: containers, err: err}
	}
}

// fetchAnnouncements creates a command to load recent announcements for the panel
func fetchAnnouncements(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		announcements, err := store.RecentAnnouncements(50)
		return announcementsMsg{announcements: announcements, err: err}
	}
}

// waitForEvent creates a command that waits for the next monitor event
func waitForEvent(events <-chan model.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return eventMsg{event: ev, ok: ok}
	}
}

// fetchLogTail creates a command to load the last lines of a container log
func fetchLogTail(client deploy.DeployClient, id string) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.GetContainerLogs(id, 50)
		return logTailMsg{entries: entries, err: err}
	}
}

// waitForLogs creates a command that waits for the next streamed log line
func waitForLogs(logsChan <-chan model.LogEntry, errChan <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case entry, ok := <-logsChan:
			return logsMsg{entry: entry, ok: ok}
		case err := <-errChan:
			return logsMsg{err: err}
		}
	}
}

// startContainer creates a command to start a container
func startContainer(client deploy.DeployClient, id, name string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{
			message: fmt.Sprintf("Started: %s", name),
			err:     client.StartContainer(id),
		}
	}
}

// stopContainer creates a command to stop a container
func stopContainer(client deploy.DeployClient, id, name string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{
			message: fmt.Sprintf("Stopped: %s", name),
			err:     client.StopContainer(id),
		}
	}
}

// restartContainer creates a command to restart a container
func restartContainer(client deploy.DeployClient, id, name string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{
			message: fmt.Sprintf("Restarted: %s", name),
			err:     client.RestartContainer(id),
		}
	}
}

// restartProject creates a command to restart every container of the project
func restartProject(client deploy.DeployClient, project string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{
			message: fmt.Sprintf("Restarted project: %s", project),
			err:     client.RestartProject(project),
		}
	}
}
