package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// notifyChannel is the LISTEN/NOTIFY channel carrying the key of every
// written row.
const notifyChannel = "laroza_store_changes"

// PostgresStore keeps each collection as a single row in the collections
// table; the upsert replaces the whole value, so concurrent writers keep
// last-writer-wins semantics. Watch is backed by LISTEN/NOTIFY: Set emits
// pg_notify with the key and watchers re-read the row.
type PostgresStore struct {
	db  *sqlx.DB
	dsn string
}

// NewPostgresStore wraps an already-connected database handle. The DSN is
// retained because each Watch opens its own listener connection.
func NewPostgresStore(db *sqlx.DB, dsn string) *PostgresStore {
	return &PostgresStore{db: db, dsn: dsn}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM collections WHERE key = $1`
	var v string
	if err := s.db.GetContext(ctx, &v, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value string) error {
	const q = `
        INSERT INTO collections (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, key)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE key = $1`, key)
	return err
}

func (s *PostgresStore) Watch(ctx context.Context, key string) (<-chan string, error) {
	listener := pq.NewListener(s.dsn, 10*time.Second, time.Minute, nil)
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	out := make(chan string, 16)

	go func() {
		defer close(out)
		defer listener.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// n is nil after a connection reset; the listener reconnects
				// on its own.
				if n == nil || n.Extra != key {
					continue
				}
				v, exists, err := s.Get(ctx, key)
				if err != nil || !exists {
					if err != nil {
						log.Warn().Err(err).Str("key", key).Msg("failed to read watched key")
					}
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
