package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rusenback/announce-monitor/internal/model"
	"github.com/rusenback/announce-monitor/internal/source"
)

// fakeSource palauttaa ennalta annetut ilmoitukset
type fakeSource struct {
	name  string
	items []model.Announcement
	err   error
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Fetch(ctx context.Context) ([]model.Announcement, error) {
	return f.items, f.err
}

// fakeStore pitää seen-avaimet muistissa
type fakeStore struct {
	seen    map[string]bool
	history []model.Announcement
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (s *fakeStore) IsSeen(key string) (bool, error) { return s.seen[key], nil }
func (s *fakeStore) MarkSeen(key, source string, notified bool, at time.Time) error {
	s.seen[key] = true
	return nil
}
func (s *fakeStore) SeenCount() (int, error)                 { return len(s.seen), nil }
func (s *fakeStore) RecordAnnouncement(a model.Announcement) { s.history = append(s.history, a) }

// fakeNotifier tallentaa lähetetyt ilmoitukset
type fakeNotifier struct {
	sent     []model.Announcement
	startups int
	err      error
}

func (n *fakeNotifier) Send(ctx context.Context, item model.Announcement) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, item)
	return nil
}

func (n *fakeNotifier) SendStartup(ctx context.Context, sources []string, interval time.Duration) error {
	n.startups++
	return nil
}

func ann(source, title, date string) model.Announcement {
	return model.Announcement{Source: source, Title: title, Date: date}
}

func newTestMonitor(store Store, notifier *fakeNotifier, sources ...*fakeSource) *Monitor {
	cfg := Config{
		Store:    store,
		Notifier: notifier,
		Interval: time.Minute,
		Location: time.UTC,
	}
	for _, s := range sources {
		cfg.Sources = append(cfg.Sources, s)
	}
	return New(cfg)
}

func TestFirstRunBaselinesWithoutNotifying(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	src := &fakeSource{name: "微信支付", items: []model.Announcement{
		ann("微信支付", "旧公告一", "2025-05-01"),
		ann("微信支付", "旧公告二", "2025-05-02"),
	}}

	m := newTestMonitor(store, notifier, src)
	m.firstRun = true
	m.CheckUpdates(context.Background())

	require.Empty(t, notifier.sent, "baseline round must not notify")
	require.Len(t, store.seen, 2)
	require.False(t, m.firstRun, "first run flag should clear after the round")
}

func TestNewItemNotifiedOnce(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	src := &fakeSource{name: "腾讯云", items: []model.Announcement{
		ann("腾讯云", "维护公告", "2025-06-01"),
	}}

	m := newTestMonitor(store, notifier, src)
	m.firstRun = false

	m.CheckUpdates(context.Background())
	require.Len(t, notifier.sent, 1)
	require.Equal(t, "维护公告", notifier.sent[0].Title)

	// Sama kierros uudelleen: ei uutta ilmoitusta
	m.CheckUpdates(context.Background())
	require.Len(t, notifier.sent, 1)
}

func TestNotifyFailureStillMarksSeen(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{err: errors.New("webhook down")}
	src := &fakeSource{name: "易宝支付", items: []model.Announcement{
		ann("易宝支付", "通知", "2025-06-01"),
	}}

	m := newTestMonitor(store, notifier, src)
	m.firstRun = false

	m.CheckUpdates(context.Background())
	require.Empty(t, notifier.sent)
	require.Len(t, store.seen, 1, "failed notification must not repeat on the next round")

	notifier.err = nil
	m.CheckUpdates(context.Background())
	require.Empty(t, notifier.sent)
}

func TestSourceErrorDoesNotAbortRound(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	broken := &fakeSource{name: "腾讯云", err: errors.New("timeout")}
	healthy := &fakeSource{name: "微信支付", items: []model.Announcement{
		ann("微信支付", "新公告", "2025-06-01"),
	}}

	m := newTestMonitor(store, notifier, broken, healthy)
	m.firstRun = false
	m.CheckUpdates(context.Background())

	require.Len(t, notifier.sent, 1)

	statuses := m.Statuses()
	require.Len(t, statuses, 2)
	// Järjestetty nimen mukaan: 微信支付 < 腾讯云 ei päde unicodessa suoraan,
	// joten etsitään nimellä
	for _, s := range statuses {
		if s.Name == "腾讯云" {
			require.Error(t, s.LastError)
		}
		if s.Name == "微信支付" {
			require.NoError(t, s.LastError)
			require.Equal(t, 1, s.LastCount)
		}
	}
}

func TestDebugTimeIgnoresOldItems(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	src := &fakeSource{name: "微信支付", items: []model.Announcement{
		ann("微信支付", "旧公告", "2025-01-01"),
		ann("微信支付", "新公告", "2025-06-01"),
	}}

	cfg := Config{
		Sources:   []source.Source{src},
		Store:     store,
		Notifier:  notifier,
		Interval:  time.Minute,
		Location:  time.UTC,
		DebugTime: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	m := New(cfg)
	m.firstRun = false
	m.CheckUpdates(context.Background())

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "新公告", notifier.sent[0].Title)
	_, oldSeen := store.seen["微信支付_旧公告_2025-01-01"]
	require.False(t, oldSeen, "pre-cutoff items must be ignored entirely")
}

func TestRunStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	src := &fakeSource{name: "微信支付"}

	m := newTestMonitor(store, notifier, src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestRunWithExistingStateNotifiesNewItems(t *testing.T) {
	// Uudelleenkäynnistys olemassa olevalla kannalla ei saa ajaa baselinea:
	// ensimmäinen kierros ilmoittaa uudet avaimet heti
	store := newFakeStore()
	store.seen["微信支付_旧公告_2025-05-01"] = true

	notifier := &fakeNotifier{}
	src := &fakeSource{name: "微信支付", items: []model.Announcement{
		ann("微信支付", "旧公告", "2025-05-01"),
		ann("微信支付", "重启后的新公告", "2025-06-01"),
	}}

	m := newTestMonitor(store, notifier, src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "重启后的新公告", notifier.sent[0].Title)
	require.True(t, store.seen["微信支付_重启后的新公告_2025-06-01"])
}

func TestNotifyOnStart(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	src := &fakeSource{name: "微信支付"}

	m := newTestMonitor(store, notifier, src)
	m.cfg.NotifyOnStart = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	require.Equal(t, 1, notifier.startups)
}
