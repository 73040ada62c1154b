package datasync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel is the Pub/Sub channel shared by every process attached to the
// same store.
const Channel = "laroza-data-sync"

// RedisTransport carries events over a Redis Pub/Sub channel. This is the
// primary cross-context path; the storage envelope provides the redundant
// fallback.
type RedisTransport struct {
	rdb    *redis.Client
	origin string
	pubsub *redis.PubSub
}

// NewRedisTransport creates a transport over an existing Redis client.
func NewRedisTransport(rdb *redis.Client) *RedisTransport {
	return &RedisTransport{rdb: rdb, origin: uuid.NewString()}
}

func (t *RedisTransport) Start(ctx context.Context, deliver func(Event)) error {
	t.pubsub = t.rdb.Subscribe(ctx, Channel)
	if _, err := t.pubsub.Receive(ctx); err != nil {
		_ = t.pubsub.Close()
		t.pubsub = nil
		return fmt.Errorf("subscribe %s: %w", Channel, err)
	}

	msgs := t.pubsub.Channel()
	go func() {
		for msg := range msgs {
			origin, ev, err := decodeEnvelope([]byte(msg.Payload))
			if err != nil {
				log.Warn().Err(err).Str("channel", Channel).Msg("dropping sync message")
				continue
			}
			if origin == t.origin {
				continue
			}
			deliver(ev)
		}
	}()
	return nil
}

func (t *RedisTransport) Publish(ctx context.Context, ev Event) error {
	return t.rdb.Publish(ctx, Channel, encodeEnvelope(t.origin, ev)).Err()
}

func (t *RedisTransport) Close() error {
	if t.pubsub != nil {
		return t.pubsub.Close()
	}
	return nil
}
