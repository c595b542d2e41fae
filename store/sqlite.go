package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteOffsetStore persists poll offsets in a local SQLite file, one
// row per bot name. Suited to single-process bots that want durability
// without running a database server.
type SQLiteOffsetStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteOffsetStore opens (or creates) the database file and
// prepares the offsets table. The connection is tuned for a single
// writer: WAL journal, busy timeout, one open connection.
func NewSQLiteOffsetStore(path, name string) (*SQLiteOffsetStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// SQLite handles one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY churn between Load and Save.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS bot_offsets (
		name        TEXT PRIMARY KEY,
		next_offset INTEGER NOT NULL,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bot_offsets: %w", err)
	}

	return &SQLiteOffsetStore{db: db, name: name}, nil
}

// Load returns the saved offset, or 0 when none was saved yet.
func (s *SQLiteOffsetStore) Load(ctx context.Context) (int64, error) {
	var offset int64
	err := s.db.QueryRowContext(ctx,
		"SELECT next_offset FROM bot_offsets WHERE name = ?", s.name,
	).Scan(&offset)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load offset %s: %w", s.name, err)
	}
	return offset, nil
}

// Save upserts the offset for this bot name.
func (s *SQLiteOffsetStore) Save(ctx context.Context, offset int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bot_offsets (name, next_offset, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET next_offset = excluded.next_offset, updated_at = CURRENT_TIMESTAMP`,
		s.name, offset,
	)
	if err != nil {
		return fmt.Errorf("save offset %s: %w", s.name, err)
	}
	return nil
}

// Close closes the database file.
func (s *SQLiteOffsetStore) Close() error {
	return s.db.Close()
}

// Compile-time interface check.
var _ OffsetStore = (*SQLiteOffsetStore)(nil)
