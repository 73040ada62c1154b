package datasync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LarozaLighting/laroza_api/internal/store"
)

// EnvelopeKey is the well-known store key used to relay change events
// between contexts that share a store. Its value is a disposable envelope,
// transport plumbing rather than a data record, and each write overwrites the
// previous one.
const EnvelopeKey = "laroza-sync-event"

// EnvelopeTransport publishes by writing the serialized event to EnvelopeKey
// and receives through the store's change-notification facility. It works
// with any Store backend that supports Watch and is the fallback path when
// a dedicated broadcast channel is unavailable.
type EnvelopeTransport struct {
	st     store.Store
	origin string
}

// NewEnvelopeTransport creates a transport over the shared store.
func NewEnvelopeTransport(st store.Store) *EnvelopeTransport {
	return &EnvelopeTransport{st: st, origin: uuid.NewString()}
}

func (t *EnvelopeTransport) Start(ctx context.Context, deliver func(Event)) error {
	values, err := t.st.Watch(ctx, EnvelopeKey)
	if err != nil {
		return fmt.Errorf("watch %s: %w", EnvelopeKey, err)
	}

	go func() {
		for raw := range values {
			origin, ev, err := decodeEnvelope([]byte(raw))
			if err != nil {
				log.Warn().Err(err).Str("key", EnvelopeKey).Msg("dropping sync envelope")
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

func (t *EnvelopeTransport) Publish(ctx context.Context, ev Event) error {
	return t.st.Set(ctx, EnvelopeKey, string(encodeEnvelope(t.origin, ev)))
}

func (t *EnvelopeTransport) Close() error {
	return nil
}
