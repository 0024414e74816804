// Package sqlitestore persists the offline write queue in a local SQLite
// file, so staged mutations survive process restart.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "github.com/mattn/go-sqlite3" // driver import

	"github.com/shelfwise/circulation/offline"
	"github.com/shelfwise/circulation/remotestore"
)

// ErrOpeningQueueFailed is returned when the queue database cannot be opened.
var ErrOpeningQueueFailed = errors.New("opening offline queue database failed")

// Store implements offline.Store on a SQLite file.
//
// The queue is one ordered table; the rowid-ordered read keeps enqueue order.
// Unreadable rows surface as Load errors, which the queue treats as empty.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the queue database at path. Use ":memory:" for tests.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Join(ErrOpeningQueueFailed, err)
		}
	}

	// busy_timeout and WAL keep a producer and a late reader from tripping
	// over each other on the same file.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningQueueFailed, err)
	}

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningQueueFailed, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func applySchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS write_queue (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity TEXT NOT NULL,
		kind TEXT NOT NULL,
		record_id TEXT NOT NULL DEFAULT '',
		record BLOB,
		enqueued_at DATETIME NOT NULL
	);`)

	return err
}

// Append adds one operation at the tail of the queue.
func (s *Store) Append(op offline.Operation) error {
	_, err := s.db.Exec(
		`INSERT INTO write_queue (entity, kind, record_id, record, enqueued_at) VALUES (?, ?, ?, ?, ?)`,
		string(op.Entity), string(op.Kind), op.RecordID, []byte(op.Record), op.EnqueuedAt.UTC(),
	)

	return err
}

// Load returns the staged operations in enqueue order.
func (s *Store) Load() ([]offline.Operation, error) {
	rows, err := s.db.Query(
		`SELECT entity, kind, record_id, record, enqueued_at FROM write_queue ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ops := make([]offline.Operation, 0)

	for rows.Next() {
		var entity, kind, recordID string
		var record []byte
		var enqueuedAt time.Time

		if scanErr := rows.Scan(&entity, &kind, &recordID, &record, &enqueuedAt); scanErr != nil {
			return nil, scanErr
		}

		if len(record) > 0 && !jsoniter.ConfigFastest.Valid(record) {
			return nil, fmt.Errorf("queued record for %s %s is not valid json", kind, entity)
		}

		ops = append(ops, offline.Operation{
			Entity:     remotestore.Entity(entity),
			Kind:       offline.Kind(kind),
			RecordID:   recordID,
			Record:     record,
			EnqueuedAt: enqueuedAt,
		})
	}

	return ops, rows.Err()
}

// Replace persists exactly the given operations as the new queue.
func (s *Store) Replace(ops []offline.Operation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM write_queue`); err != nil {
		return err
	}

	for _, op := range ops {
		if _, err := tx.Exec(
			`INSERT INTO write_queue (entity, kind, record_id, record, enqueued_at) VALUES (?, ?, ?, ?, ?)`,
			string(op.Entity), string(op.Kind), op.RecordID, []byte(op.Record), op.EnqueuedAt.UTC(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
