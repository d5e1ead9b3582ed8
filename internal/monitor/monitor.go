package monitor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rusenback/announce-monitor/internal/model"
	"github.com/rusenback/announce-monitor/internal/notify"
	"github.com/rusenback/announce-monitor/internal/source"
)

// Store on monitorin tarvitsema osa storagesta.
// Interface mahdollistaa mockauksen testeissä.
type Store interface {
	IsSeen(key string) (bool, error)
	MarkSeen(key, source string, notified bool, at time.Time) error
	SeenCount() (int, error)
	RecordAnnouncement(a model.Announcement)
}

// Config sisältää monitorin asetukset
type Config struct {
	Sources       []source.Source
	Store         Store
	Notifier      notify.Notifier
	Interval      time.Duration
	Location      *time.Location
	DebugTime     time.Time // nolla = normaali tila
	NotifyOnStart bool
	Logger        *zap.Logger
}

// SourceStatus on yhden lähteen tila dashboardia varten
type SourceStatus struct {
	Name      string
	LastPoll  time.Time
	LastCount int
	LastError error
}

// Monitor pollaa lähteitä ja lähettää uudet ilmoitukset eteenpäin
type Monitor struct {
	cfg      Config
	log      *zap.Logger
	firstRun bool

	pollCh chan struct{}
	events chan model.Event

	mu       sync.Mutex
	statuses map[string]*SourceStatus

	now func() time.Time
}

// New luo uuden monitorin
func New(cfg Config) *Monitor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	statuses := make(map[string]*SourceStatus, len(cfg.Sources))
	for _, src := range cfg.Sources {
		statuses[src.Name()] = &SourceStatus{Name: src.Name()}
	}

	return &Monitor{
		cfg:      cfg,
		log:      cfg.Logger,
		pollCh:   make(chan struct{}, 1),
		events:   make(chan model.Event, 128),
		statuses: statuses,
		now:      time.Now,
	}
}

// Events palauttaa kanavan josta dashboard lukee tapahtumat
func (m *Monitor) Events() <-chan model.Event {
	return m.events
}

// TriggerPoll pyytää välittömän pollauskierroksen
func (m *Monitor) TriggerPoll() {
	select {
	case m.pollCh <- struct{}{}:
	default:
		// Kierros on jo jonossa
	}
}

// Statuses palauttaa lähteiden tilat nimen mukaan järjestettynä
func (m *Monitor) Statuses() []SourceStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]SourceStatus, 0, len(m.statuses))
	for _, s := range m.statuses {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Run pyörittää pollauslooppia kunnes konteksti perutaan.
// Ensimmäinen kierros ajetaan heti.
func (m *Monitor) Run(ctx context.Context) error {
	// Tyhjä seen-taulu tarkoittaa baseline-kierrosta
	count, err := m.cfg.Store.SeenCount()
	if err != nil {
		return fmt.Errorf("read seen count: %w", err)
	}
	m.firstRun = count == 0

	m.log.Info("monitor started",
		zap.Int("sources", len(m.cfg.Sources)),
		zap.Duration("interval", m.cfg.Interval),
		zap.Bool("first_run", m.firstRun))
	m.emit(model.EventInfo, fmt.Sprintf("监控服务已启动，巡检间隔 %d 分钟", int(m.cfg.Interval.Minutes())))

	if m.cfg.NotifyOnStart {
		names := make([]string, 0, len(m.cfg.Sources))
		for _, src := range m.cfg.Sources {
			names = append(names, src.Name())
		}
		if err := m.cfg.Notifier.SendStartup(ctx, names, m.cfg.Interval); err != nil {
			m.log.Warn("startup notification failed", zap.Error(err))
		}
	}

	m.CheckUpdates(ctx)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckUpdates(ctx)
		case <-m.pollCh:
			m.CheckUpdates(ctx)
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return ctx.Err()
		}
	}
}

// CheckUpdates ajaa yhden pollauskierroksen kaikille lähteille
func (m *Monitor) CheckUpdates(ctx context.Context) {
	baseline := 0

	for _, src := range m.cfg.Sources {
		if ctx.Err() != nil {
			return
		}

		items, err := src.Fetch(ctx)
		m.setStatus(src.Name(), len(items), err)

		if err != nil {
			m.log.Warn("fetch failed", zap.String("source", src.Name()), zap.Error(err))
			m.emit(model.EventError, fmt.Sprintf("%s 获取失败: %v", src.Name(), err))
			continue
		}

		m.log.Info("checked source",
			zap.String("source", src.Name()),
			zap.Int("items", len(items)))
		m.emit(model.EventInfo, fmt.Sprintf("正在检查 %s 公告，获取到 %d 条", src.Name(), len(items)))

		for _, item := range items {
			handled, err := m.handleItem(ctx, item)
			if err != nil {
				m.log.Warn("item handling failed",
					zap.String("source", src.Name()),
					zap.String("title", item.Title),
					zap.Error(err))
				continue
			}
			if handled && m.firstRun {
				baseline++
			}
		}
	}

	if m.firstRun {
		m.log.Info("baseline collected", zap.Int("items", baseline))
		m.emit(model.EventInfo, fmt.Sprintf("首次运行，已收集 %d 条现有公告", baseline))
		m.firstRun = false
	}
}

// handleItem käsittelee yhden ilmoituksen. Palauttaa true jos avain oli uusi.
func (m *Monitor) handleItem(ctx context.Context, item model.Announcement) (bool, error) {
	// Debug-tilassa rajapäivää vanhemmat ohitetaan kokonaan
	if !m.cfg.DebugTime.IsZero() {
		published, err := item.PublishedDate(m.cfg.Location)
		if err != nil {
			return false, fmt.Errorf("parse date %q: %w", item.Date, err)
		}
		if published.Before(m.cfg.DebugTime) {
			return false, nil
		}
	}

	key := item.Key()
	seen, err := m.cfg.Store.IsSeen(key)
	if err != nil {
		return false, fmt.Errorf("check seen: %w", err)
	}
	if seen {
		return false, nil
	}

	now := m.now()
	item.DiscoveredAt = now

	notified := false
	if !m.firstRun {
		m.log.Info("new announcement", zap.String("key", key))
		m.emit(model.EventNotify, fmt.Sprintf("检测到新公告：%s", key))

		if err := m.cfg.Notifier.Send(ctx, item); err != nil {
			// Avain merkitään nähdyksi silti, muuten epäonnistunut
			// webhook toistaisi saman ilmoituksen joka kierroksella
			m.log.Warn("notification failed", zap.String("key", key), zap.Error(err))
			m.emit(model.EventError, fmt.Sprintf("发送通知失败: %v", err))
		} else {
			notified = true
		}
	}

	if err := m.cfg.Store.MarkSeen(key, item.Source, notified, now); err != nil {
		return false, fmt.Errorf("mark seen: %w", err)
	}
	m.cfg.Store.RecordAnnouncement(item)

	return true, nil
}

// setStatus päivittää lähteen tilan dashboardia varten
func (m *Monitor) setStatus(name string, count int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.statuses[name]
	if !ok {
		s = &SourceStatus{Name: name}
		m.statuses[name] = s
	}
	s.LastPoll = m.now()
	s.LastCount = count
	s.LastError = err
}

// emit lähettää tapahtuman dashboardille, pudottaa jos kukaan ei kuuntele
func (m *Monitor) emit(level model.EventLevel, msg string) {
	ev := model.Event{Timestamp: m.now(), Level: level, Message: msg}
	select {
	case m.events <- ev:
	default:
	}
}
