package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rusenback/announce-monitor/internal/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMarkSeenAndIsSeen(t *testing.T) {
	s := newTestStorage(t)

	key := "微信支付_测试公告_2025-06-01"
	seen, err := s.IsSeen(key)
	require.NoError(t, err)
	require.False(t, seen)

	require.NoError(t, s.MarkSeen(key, "微信支付", true, time.Now()))

	seen, err = s.IsSeen(key)
	require.NoError(t, err)
	require.True(t, seen)

	// Marking the same key again must not error
	require.NoError(t, s.MarkSeen(key, "微信支付", false, time.Now()))
}

func TestSeenCount(t *testing.T) {
	s := newTestStorage(t)

	count, err := s.SeenCount()
	require.NoError(t, err)
	require.Equal(t, 0, count)

	require.NoError(t, s.MarkSeen("a_1_2025-06-01", "a", false, time.Now()))
	require.NoError(t, s.MarkSeen("a_2_2025-06-01", "a", false, time.Now()))

	count, err = s.SeenCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestSeenKeysSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStorage(dir)
	require.NoError(t, err)

	key := "微信支付_维护公告_2025-06-01"
	require.NoError(t, s.MarkSeen(key, "微信支付", true, time.Now()))
	require.NoError(t, s.Close())

	// Uusi avaus samaan hakemistoon näkee vanhat avaimet
	reopened, err := NewStorage(dir)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	seen, err := reopened.IsSeen(key)
	require.NoError(t, err)
	require.True(t, seen)

	count, err := reopened.SeenCount()
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRecordAndRecentAnnouncements(t *testing.T) {
	s := newTestStorage(t)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		s.RecordAnnouncement(model.Announcement{
			Source:       "腾讯云",
			ID:           title,
			Title:        title,
			URL:          "https://cloud.tencent.com/announce/detail/" + title,
			Date:         "2025-06-01",
			DiscoveredAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	// The history writer batches in the background; force a flush window.
	require.Eventually(t, func() bool {
		recent, err := s.RecentAnnouncements(10)
		return err == nil && len(recent) == 3
	}, 10*time.Second, 100*time.Millisecond)

	recent, err := s.RecentAnnouncements(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "third", recent[0].Title)
	require.Equal(t, "second", recent[1].Title)
}
