package store

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQLOffsetStore persists poll offsets in MySQL, one row per bot
// name. Use it when several bots share an existing MySQL deployment.
//
// The table (auto-created when AutoMigrate is true):
//
//	{table} (name VARCHAR PRIMARY KEY, next_offset BIGINT, updated_at TIMESTAMP)
type MySQLOffsetStore struct {
	db    *sql.DB
	table string
	name  string
}

// MySQLOffsetStoreConfig configures the MySQL store.
type MySQLOffsetStoreConfig struct {
	Table       string // table name, default "bot_offsets"
	AutoMigrate bool   // create the table if not exists, default true
}

// NewMySQLOffsetStore creates an OffsetStore for one bot, keyed by
// name. The sql.DB must be already opened with a MySQL driver; the
// store does not own it and Close is a no-op on the connection pool.
func NewMySQLOffsetStore(db *sql.DB, name string, config ...MySQLOffsetStoreConfig) (*MySQLOffsetStore, error) {
	cfg := MySQLOffsetStoreConfig{Table: "bot_offsets", AutoMigrate: true}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Table == "" {
			cfg.Table = "bot_offsets"
		}
	}

	s := &MySQLOffsetStore{db: db, table: cfg.Table, name: name}
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return nil, fmt.Errorf("auto-migrate failed: %w", err)
		}
	}
	return s, nil
}

func (s *MySQLOffsetStore) migrate() error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name        VARCHAR(255) NOT NULL,
		next_offset BIGINT       NOT NULL,
		updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, s.table)

	_, err := s.db.Exec(ddl)
	return err
}

// Load returns the saved offset, or 0 when none was saved yet.
func (s *MySQLOffsetStore) Load(ctx context.Context) (int64, error) {
	var offset int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT next_offset FROM %s WHERE name=?", s.table),
		s.name,
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
func (s *MySQLOffsetStore) Save(ctx context.Context, offset int64) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (name, next_offset) VALUES (?, ?) ON DUPLICATE KEY UPDATE next_offset=VALUES(next_offset)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, q, s.name, offset); err != nil {
		return fmt.Errorf("save offset %s: %w", s.name, err)
	}
	return nil
}

// Close is a no-op: the caller owns the *sql.DB and may share it with
// other stores.
func (s *MySQLOffsetStore) Close() error {
	return nil
}

// Compile-time interface check.
var _ OffsetStore = (*MySQLOffsetStore)(nil)
