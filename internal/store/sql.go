package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ppiankov/rivalry/internal/model"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id           BIGINT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stats (
		id           BIGINT PRIMARY KEY,
		category_id  BIGINT NOT NULL REFERENCES categories (id),
		description  TEXT NOT NULL,
		value_a      TEXT NOT NULL,
		value_b      TEXT NOT NULL,
		last_updated TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stats_category ON stats (category_id, id)`,
}

// SQLStore keeps facts in sqlite or postgres
type SQLStore struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and applies the schema
func Open(ctx context.Context, cfg model.StoreConfig) (*SQLStore, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("sqlite3 requires a dsn")
		}
		if !strings.HasPrefix(dsn, "file:") && !strings.HasPrefix(dsn, ":memory:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on&_busy_timeout=5000"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLStore{db: db, driver: cfg.Driver}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the tables if they do not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// ListCategories returns categories ordered by ID
func (s *SQLStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, display_name
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListStats returns the records of one category ordered by ID
func (s *SQLStore) ListStats(ctx context.Context, categoryID int64) ([]model.StatRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, description, value_a, value_b, last_updated
		FROM stats
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []model.StatRecord
	for rows.Next() {
		var r model.StatRecord
		if err := rows.Scan(&r.ID, &r.CategoryID, &r.Description, &r.ValueA, &r.ValueB, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Replace swaps the whole fact table in one transaction
func (s *SQLStore) Replace(ctx context.Context, categories []model.Category, stats []model.StatRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stats`); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	for _, c := range categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, display_name)
			VALUES ($1, $2, $3)
		`, c.ID, c.Name, c.DisplayName); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Name, err)
		}
	}

	for _, r := range numberStats(stats) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO stats (id, category_id, description, value_a, value_b, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.ID, r.CategoryID, r.Description, r.ValueA, r.ValueB, r.LastUpdated); err != nil {
			return fmt.Errorf("insert stat %q: %w", r.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of stat records
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stats: %w", err)
	}
	return n, nil
}

// Driver returns the database driver name
func (s *SQLStore) Driver() string {
	return s.driver
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// OpenFromConfig opens the configured store. The "memory" driver needs no database.
func OpenFromConfig(ctx context.Context, cfg model.StoreConfig) (Store, error) {
	if cfg.Driver == "memory" {
		return NewMemory(), nil
	}
	return Open(ctx, cfg)
}
