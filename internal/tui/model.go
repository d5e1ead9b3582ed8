package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/announce-monitor/internal/deploy"
	"github.com/rusenback/announce-monitor/internal/model"
	"github.com/rusenback/announce-monitor/internal/monitor"
	"github.com/rusenback/announce-monitor/internal/storage"
)

// maxEvents on tapahtumalokin pituus muistissa
const maxEvents = 1000

// Model represents the dashboard state
type Model struct {
	mon     *monitor.Monitor
	store   *storage.Storage
	deploy  deploy.DeployClient // nil jos Docker ei ole käytettävissä
	project string

	statuses      []monitor.SourceStatus
	announcements []model.Announcement

	containers []model.Container
	cursor     int

	events           []model.Event
	eventsScroll     int
	eventsAutoFollow bool

	// Container log mode for the bottom-right panel
	logsFor     string // container ID, tyhjä = event log
	logsForName string
	logs        []model.LogEntry
	logsChan    <-chan model.LogEntry
	logsErrChan <-chan error
	logsCancel  func()

	err     error
	loading bool
	message string
	width   int
	height  int
}

// Message types for the Bubbletea update loop
type tickMsg time.Time

type containersMsg struct {
	containers []model.Container
	err        error
}

type announcementsMsg struct {
	announcements []model.Announcement
	err           error
}

type eventMsg struct {
	event model.Event
	ok    bool
}

type actionMsg struct {
	message string
	err     error
}

type logTailMsg struct {
	entries []model.LogEntry
	err     error
}

type logsMsg struct {
	entry model.LogEntry
	ok    bool
	err   error
}

// NewModel creates the dashboard model
func NewModel(mon *monitor.Monitor, store *storage.Storage, deployClient deploy.DeployClient, project string) Model {
	return Model{
		mon:              mon,
		store:            store,
		deploy:           deployClient,
		project:          project,
		loading:          true,
		eventsAutoFollow: true,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		fetchAnnouncements(m.store),
		waitForEvent(m.mon.Events()),
		tickCmd(),
	}
	if m.deploy != nil {
		cmds = append(cmds, fetchContainers(m.deploy, m.project))
	}
	return tea.Batch(cmds...)
}
