// README: Backend selection for the preference and session stores.
package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"tourplan/internal/config"
	"tourplan/internal/modules/memory"
	"tourplan/internal/modules/preference"
)

// NewPreferenceStore opens the backend named by cfg.Backend.
func NewPreferenceStore(ctx context.Context, cfg config.StoreConfig) (memory.Store, error) {
	slog.InfoContext(ctx, "opening preference store", "backend", cfg.Backend)
	switch cfg.Backend {
	case "neo4j":
		store, err := memory.NewNeo4jStore(ctx, cfg.Neo4jURI, cfg.Neo4jUsername, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		pool, err := NewDB(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return memory.NewPostgresStore(pool), nil
	case "sqlite":
		store, err := memory.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewSessionStore returns the session store for cfg.Backend. rdb is only used for "redis".
func NewSessionStore(cfg config.SessionConfig, rdb *redis.Client) (preference.SessionStore, error) {
	switch cfg.Backend {
	case "memory":
		return preference.NewMemoryStore(), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("session backend redis needs a redis client")
		}
		return preference.NewRedisStore(rdb, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
