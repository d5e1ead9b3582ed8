package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rusenback/announce-monitor/internal/model"
)

// historyRetention is how long announcement history is kept for the dashboard.
const historyRetention = 90 * 24 * time.Hour

// Storage handles persistent dedup state and announcement history
type Storage struct {
	db        *sql.DB
	writeChan chan model.Announcement
	closeChan chan struct{}
}

// NewStorage opens (or creates) the database under dataDir.
// An empty dataDir defaults to ~/.annmon.
func NewStorage(dataDir string) (*Storage, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".annmon")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "announcements.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Storage{
		db:        db,
		writeChan: make(chan model.Announcement, 256),
		closeChan: make(chan struct{}),
	}

	// Start background history writer
	go s.writer()

	// Start cleanup routine
	go s.cleanup()

	return s, nil
}

// createTables creates the database schema
func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS seen (
		key TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		first_seen INTEGER NOT NULL,
		notified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS announcements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		source_id TEXT,
		title TEXT NOT NULL,
		url TEXT,
		pub_date TEXT NOT NULL,
		pub_time TEXT,
		discovered_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_announcements_discovered
	ON announcements(discovered_at);
	`

	_, err := db.Exec(schema)
	return err
}

// IsSeen checks whether a dedup key has been recorded before
func (s *Storage) IsSeen(key string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM seen WHERE key = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkSeen records a dedup key. Marking the same key twice is a no-op
// so a poll that races a restart cannot fail on the primary key.
func (s *Storage) MarkSeen(key, source string, notified bool, at time.Time) error {
	n := 0
	if notified {
		n = 1
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO seen (key, source, first_seen, notified) VALUES (?, ?, ?, ?)",
		key, source, at.Unix(), n,
	)
	return err
}

// SeenCount palauttaa tallennettujen avainten määrän.
// Nolla tarkoittaa ensimmäistä ajoa (baseline-kierros).
func (s *Storage) SeenCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM seen").Scan(&count)
	return count, err
}

// RecordAnnouncement queues an announcement for the history table
func (s *Storage) RecordAnnouncement(a model.Announcement) {
	select {
	case s.writeChan <- a:
		// Successfully queued
	default:
		// Channel full, drop silently to avoid blocking the poll loop.
		// History is display-only; dedup state is written synchronously.
	}
}

// RecentAnnouncements returns the newest entries for the dashboard
func (s *Storage) RecentAnnouncements(limit int) ([]model.Announcement, error) {
	rows, err := s.db.Query(`
		SELECT source, source_id, title, url, pub_date, pub_time, discovered_at
		FROM announcements
		ORDER BY discovered_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Announcement
	for rows.Next() {
		var a model.Announcement
		var sourceID, url, pubTime sql.NullString
		var discovered int64

		if err := rows.Scan(&a.Source, &sourceID, &a.Title, &url, &a.Date, &pubTime, &discovered); err != nil {
			continue
		}
		a.ID = sourceID.String
		a.URL = url.String
		a.Time = pubTime.String
		a.DiscoveredAt = time.Unix(discovered, 0)
		result = append(result, a)
	}

	return result, rows.Err()
}

// writer runs in background and batch writes history to the database
func (s *Storage) writer() {
	buffer := make([]model.Announcement, 0, 32)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case a := <-s.writeChan:
			buffer = append(buffer, a)
			if len(buffer) >= 32 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-ticker.C:
			if len(buffer) > 0 {
				s.batchWrite(buffer)
				buffer = buffer[:0]
			}

		case <-s.closeChan:
			// Final flush on close
			if len(buffer) > 0 {
				s.batchWrite(buffer)
			}
			return
		}
	}
}

// batchWrite writes a batch of announcements to the history table
func (s *Storage) batchWrite(batch []model.Announcement) {
	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO announcements
		(source, source_id, title, url, pub_date, pub_time, discovered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return
	}
	defer stmt.Close()

	for _, a := range batch {
		at := a.DiscoveredAt
		if at.IsZero() {
			at = time.Now()
		}
		if _, err := stmt.Exec(a.Source, a.ID, a.Title, a.URL, a.Date, a.Time, at.Unix()); err != nil {
			continue
		}
	}

	tx.Commit()
}

// cleanup removes old history periodically
func (s *Storage) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-historyRetention).Unix()
			s.batchDelete(cutoff)

		case <-s.closeChan:
			return
		}
	}
}

// batchDelete removes old records in batches to prevent long-running locks
func (s *Storage) batchDelete(cutoffTimestamp int64) {
	const batchSize = 1000
	for {
		result, err := s.db.Exec(
			"DELETE FROM announcements WHERE discovered_at < ? LIMIT ?",
			cutoffTimestamp,
			batchSize,
		)
		if err != nil {
			return
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil || rowsAffected == 0 {
			return
		}

		time.Sleep(100 * time.Millisecond)
	}
}

// Close closes the storage
func (s *Storage) Close() error {
	close(s.closeChan)
	time.Sleep(100 * time.Millisecond) // Allow goroutines to finish
	return s.db.Close()
}
