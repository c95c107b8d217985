// Package notestore persists saved note items keyed by day, backed by
// SQLite. Saving is append-only: re-saving the same title+url for a day is
// a no-op.
package notestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/moktagithub005/news-tool/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	day       TEXT NOT NULL,
	title     TEXT NOT NULL,
	url       TEXT NOT NULL DEFAULT '',
	relevance INTEGER NOT NULL DEFAULT 0,
	item      TEXT NOT NULL,
	saved_at  TEXT NOT NULL DEFAULT (datetime('now')),
	UNIQUE(day, title, url)
);
CREATE INDEX IF NOT EXISTS idx_notes_day ON notes(day);
`

// Store is a day-keyed archive of note items.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores an item under the given day (YYYY-MM-DD). An item with the
// same title and url already saved for that day is left untouched; the
// return value reports whether a new row was written.
func (s *Store) Save(ctx context.Context, day string, item model.NoteItem) (bool, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("encode item: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO notes (day, title, url, relevance, item) VALUES (?, ?, ?, ?, ?)`,
		day, item.Title, item.Source.URL, item.Relevance, string(payload),
	)
	if err != nil {
		return false, fmt.Errorf("save note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListDay returns all items saved for a day, highest relevance first with
// save order preserved on ties.
func (s *Store) ListDay(ctx context.Context, day string) ([]model.NoteItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item FROM notes WHERE day = ? ORDER BY relevance DESC, id ASC`, day)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.NoteItem{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		var item model.NoteItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return items, nil
}

// Days returns the distinct days holding saved notes, newest first.
func (s *Store) Days(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT day FROM notes ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	days := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return days, nil
}

// DeleteDay removes every item saved for a day, reporting how many went.
func (s *Store) DeleteDay(ctx context.Context, day string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE day = ?`, day)
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", err)
	}
	return result.RowsAffected()
}
