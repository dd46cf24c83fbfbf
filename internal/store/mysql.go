package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// MySQL is a Store keeping each key as a row in the kv_entries table. It
// reuses the storefront's standard database connection; the schema is
// created on demand so no external migration step is needed for the demo.
type MySQL struct {
	db *sql.DB
}

// NewMySQL wraps db and ensures the kv_entries table exists.
func NewMySQL(ctx context.Context, db *sql.DB) (*MySQL, error) {
	const ddl = `CREATE TABLE IF NOT EXISTS kv_entries (
		k VARCHAR(64) NOT NULL PRIMARY KEY,
		v LONGTEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) CHARACTER SET utf8mb4`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("ensure kv_entries: %w", err)
	}
	return &MySQL{db: db}, nil
}

func (s *MySQL) Get(ctx context.Context, key string, dest any) error {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT v FROM kv_entries WHERE k=? LIMIT 1", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *MySQL) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO kv_entries (k, v) VALUES (?,?) ON DUPLICATE KEY UPDATE v=VALUES(v)",
		key, raw)
	return err
}

func (s *MySQL) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE k=?", key)
	return err
}

func (s *MySQL) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries")
	return err
}
