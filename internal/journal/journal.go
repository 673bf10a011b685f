// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/journal/journal.go
// Summary: SQLite journal of animation lifecycle events.
//
// Records one row per lifecycle step:
//   - created: the factory built an animation for a trigger
//   - run: the animation was attached to its actors
//   - replaced: a newer animation with the same id superseded it
//   - done: the animation released its entries

package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Kind is the lifecycle step an event records.
type Kind string

const (
	KindCreated  Kind = "created"
	KindRun      Kind = "run"
	KindReplaced Kind = "replaced"
	KindDone     Kind = "done"
)

// Event is a single journal row.
type Event struct {
	Seq       int64
	Time      time.Time
	Kind      Kind
	Animation string
	Handle    uuid.UUID
	Sender    string
	Signal    string
	Entries   int
}

func (e Event) String() string {
	return fmt.Sprintf("%s %-8s %s [%s] sender=%s signal=%s entries=%d",
		e.Time.Format("2006-01-02 15:04:05.000"), e.Kind, e.Animation,
		e.Handle.String()[:8], e.Sender, e.Signal, e.Entries)
}

// Journal stores lifecycle events.
type Journal interface {
	// Record appends an event. A zero Time is replaced by the current time.
	Record(ev Event) error

	// Recent returns up to limit events, newest first.
	Recent(limit int) ([]Event, error)

	// ForAnimation returns every event of the animation id in record order.
	ForAnimation(id string) ([]Event, error)

	// Close closes the database.
	Close() error
}

// SQLiteJournal implements Journal on SQLite.
type SQLiteJournal struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Current schema version - increment when the events table changes
const journalSchemaVersion = 1

const journalSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,       -- UnixNano
    kind TEXT NOT NULL,
    animation TEXT NOT NULL,
    handle TEXT NOT NULL,
    sender TEXT NOT NULL DEFAULT '',
    signal TEXT NOT NULL DEFAULT '',
    entries INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_animation ON events(animation);
`

// Open opens or creates the journal at path.
func Open(path string) (*SQLiteJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	return &SQLiteJournal{path: path, db: db}, nil
}

// checkSchemaVersion drops events written by an incompatible schema.
func checkSchemaVersion(db *sql.DB) error {
	var currentVersion int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&currentVersion); err != nil {
		currentVersion = 0
	}
	if currentVersion == journalSchemaVersion {
		return nil
	}

	if currentVersion != 0 {
		log.Printf("[JOURNAL] Schema version %d is not %d, discarding old events", currentVersion, journalSchemaVersion)
		if _, err := db.Exec("DELETE FROM events"); err != nil {
			return fmt.Errorf("failed to clear events: %w", err)
		}
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to reset schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", journalSchemaVersion); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return nil
}

// Path returns the database file.
func (j *SQLiteJournal) Path() string { return j.path }

// Record implements Journal.
func (j *SQLiteJournal) Record(ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	_, err := j.db.Exec(
		"INSERT INTO events (timestamp, kind, animation, handle, sender, signal, entries) VALUES (?, ?, ?, ?, ?, ?, ?)",
		ev.Time.UnixNano(), string(ev.Kind), ev.Animation, ev.Handle.String(), ev.Sender, ev.Signal, ev.Entries,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s event for %q: %w", ev.Kind, ev.Animation, err)
	}
	return nil
}

// Recent implements Journal.
func (j *SQLiteJournal) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	rows, err := j.db.Query(
		"SELECT seq, timestamp, kind, animation, handle, sender, signal, entries FROM events ORDER BY seq DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return scanEvents(rows)
}

// ForAnimation implements Journal.
func (j *SQLiteJournal) ForAnimation(id string) ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	rows, err := j.db.Query(
		"SELECT seq, timestamp, kind, animation, handle, sender, signal, entries FROM events WHERE animation = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for %q: %w", id, err)
	}
	return scanEvents(rows)
}

// Close implements Journal.
func (j *SQLiteJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var (
			ev     Event
			ts     int64
			kind   string
			handle string
		)
		if err := rows.Scan(&ev.Seq, &ts, &kind, &ev.Animation, &handle, &ev.Sender, &ev.Signal, &ev.Entries); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Time = time.Unix(0, ts)
		ev.Kind = Kind(kind)
		if h, err := uuid.Parse(handle); err == nil {
			ev.Handle = h
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
