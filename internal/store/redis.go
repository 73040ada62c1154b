package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/config"
)

// RedisStore persists collections in Redis, one key per collection. Watch is
// backed by keyspace notifications, which require `notify-keyspace-events`
// to include "K$" (or "KA") on the server; without it Watch still subscribes
// but never receives, and cross-process envelope delivery is silently lost.
type RedisStore struct {
	client *redis.Client
	db     int
}

// NewRedisStore connects to Redis and pings it before returning.
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, db: cfg.DB}, nil
}

// Client exposes the underlying connection so the pub/sub sync transport can
// share it instead of dialing twice.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Watch(ctx context.Context, key string) (<-chan string, error) {
	pattern := fmt.Sprintf("__keyspace@%d__:%s", s.db, key)
	pubsub := s.client.PSubscribe(ctx, pattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("keyspace subscribe %s: %w", pattern, err)
	}

	out := make(chan string, 16)
	msgs := pubsub.Channel()

	go func() {
		defer close(out)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if msg.Payload != "set" {
					continue
				}
				// The notification carries only the operation; fetch the
				// current value. A racing overwrite may already have
				// replaced it, which is fine for last-writer-wins data.
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

func (s *RedisStore) Close() error {
	return s.client.Close()
}
