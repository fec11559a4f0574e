// README: Preference store backed by PostgreSQL (see migrations/0001_preferences.sql).
package memory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, userID, prefType, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO preferences (user_id, pref_type, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, pref_type) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, userID, prefType, value)
	return err
}

func (s *PostgresStore) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT pref_type, value FROM preferences WHERE user_id = $1`, userID)
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

func (s *PostgresStore) Update(ctx context.Context, userID, prefType, value string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE preferences SET value = $3, updated_at = NOW()
		WHERE user_id = $1 AND pref_type = $2
	`, userID, prefType, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID, prefType string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM preferences WHERE user_id = $1 AND pref_type = $2`, userID, prefType)
	return err
}

func (s *PostgresStore) Close(context.Context) error {
	s.db.Close()
	return nil
}
