// README: Embedded preference store on SQLite for local development.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database file at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	_, err = db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS preferences (
		user_id TEXT NOT NULL,
		pref_type TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, pref_type)
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, userID, prefType, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, pref_type, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, pref_type) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, userID, prefType, value, time.Now().Unix())
	return err
}

func (s *SQLiteStore) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pref_type, value FROM preferences WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var t, v string
		if err := rows.Scan(&t, &v); err != nil {
			return nil, err
		}
		out[t] = v
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, userID, prefType, value string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE preferences SET value = ?, updated_at = ?
		WHERE user_id = ? AND pref_type = ?
	`, value, time.Now().Unix(), userID, prefType)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, userID, prefType string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE user_id = ? AND pref_type = ?`, userID, prefType)
	return err
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}
