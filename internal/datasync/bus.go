package datasync

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler consumes one change event.
type Handler func(Event)

// Bus fans change events out to in-process subscribers and across the
// attached transports. One Bus per execution context; construct at startup
// with NewBus, close on shutdown. The subscriber set is rebuilt empty on
// every fresh start and is never shared between contexts.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Handler

	transports []Transport
	cancel     context.CancelFunc
}

// NewBus creates a bus over zero or more transports and starts receiving on
// each of them. A transport that fails to start is logged and skipped:
// the bus keeps working with same-context delivery only.
func NewBus(transports ...Transport) *Bus {
	b := &Bus{subs: make(map[int]Handler)}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	for _, tr := range transports {
		if err := tr.Start(ctx, b.dispatch); err != nil {
			log.Warn().Err(err).Msg("sync transport unavailable, local delivery only")
			continue
		}
		b.transports = append(b.transports, tr)
	}
	return b
}

// Broadcast publishes a change notification for a collection. The event is
// delivered synchronously to every local subscriber, then published on each
// transport. Transport failures are logged and never surfaced to the caller.
func (b *Bus) Broadcast(t EventType, a Action) {
	ev := NewEvent(t, a)
	b.dispatch(ev)

	for _, tr := range b.transports {
		if err := tr.Publish(context.Background(), ev); err != nil {
			log.Warn().Err(err).
				Str("type", string(ev.Type)).
				Str("action", string(ev.Action)).
				Msg("cross-context publish failed")
		}
	}
}

// Subscribe registers a callback for every event reaching this context and
// returns its disposer. The disposer is idempotent, and a callback that
// unsubscribes itself mid-dispatch receives no further events, including the
// one in progress for later positions.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// dispatch hands ev to every currently registered subscriber. The lock is
// not held across callbacks so handlers may subscribe or unsubscribe
// re-entrantly; each id is re-checked right before invocation.
func (b *Bus) dispatch(ev Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.Unlock()
	sort.Ints(ids)

	for _, id := range ids {
		b.mu.Lock()
		h, ok := b.subs[id]
		b.mu.Unlock()
		if !ok {
			continue
		}
		invoke(h, ev)
	}
}

// invoke isolates subscriber failures so one bad callback cannot block
// delivery to the rest.
func invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).
				Str("type", string(ev.Type)).
				Msg("sync subscriber panicked")
		}
	}()
	h(ev)
}

// Close stops transport reception and closes the transports.
func (b *Bus) Close() error {
	b.cancel()
	for _, tr := range b.transports {
		if err := tr.Close(); err != nil {
			log.Warn().Err(err).Msg("sync transport close failed")
		}
	}
	return nil
}
