package datasync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarozaLighting/laroza_api/internal/store"
)

func TestLoopbackLinksTwoBuses(t *testing.T) {
	hub := NewLoopback()

	busA := NewBus(hub.Attach())
	defer busA.Close()
	busB := NewBus(hub.Attach())
	defer busB.Close()

	var gotA, gotB []Event
	busA.Subscribe(func(ev Event) { gotA = append(gotA, ev) })
	busB.Subscribe(func(ev Event) { gotB = append(gotB, ev) })

	busA.Broadcast(TypeOrders, ActionCreate)

	// The publishing context hears its own broadcast exactly once; the peer
	// receives it through the hub.
	require.Len(t, gotA, 1)
	require.Len(t, gotB, 1)
	assert.Equal(t, gotA[0], gotB[0])
}

func TestLoopbackDetachedBusStopsReceiving(t *testing.T) {
	hub := NewLoopback()

	busA := NewBus(hub.Attach())
	defer busA.Close()
	busB := NewBus(hub.Attach())

	var gotB int
	busB.Subscribe(func(Event) { gotB++ })

	busA.Broadcast(TypeProducts, ActionUpdate)
	require.Equal(t, 1, gotB)

	require.NoError(t, busB.Close())
	busA.Broadcast(TypeProducts, ActionUpdate)
	assert.Equal(t, 1, gotB)
}

func TestEnvelopeTransportRelaysAcrossContexts(t *testing.T) {
	st := store.NewMemoryStore()

	busA := NewBus(NewEnvelopeTransport(st))
	defer busA.Close()
	busB := NewBus(NewEnvelopeTransport(st))
	defer busB.Close()

	var gotB atomic.Int32
	var last atomic.Value
	busB.Subscribe(func(ev Event) {
		last.Store(ev)
		gotB.Add(1)
	})

	busA.Broadcast(TypePromotions, ActionDelete)

	require.Eventually(t, func() bool { return gotB.Load() == 1 }, time.Second, 5*time.Millisecond)
	ev := last.Load().(Event)
	assert.Equal(t, TypePromotions, ev.Type)
	assert.Equal(t, ActionDelete, ev.Action)
	assert.Positive(t, ev.Timestamp)
}

func TestEnvelopeTransportSuppressesOwnEcho(t *testing.T) {
	st := store.NewMemoryStore()

	bus := NewBus(NewEnvelopeTransport(st))
	defer bus.Close()

	var got atomic.Int32
	bus.Subscribe(func(Event) { got.Add(1) })

	bus.Broadcast(TypeReviews, ActionCreate)

	// The local synchronous dispatch is the only delivery; the envelope write
	// must not loop back through the watcher.
	require.Equal(t, int32(1), got.Load())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), got.Load())
}

func TestEnvelopeTransportDropsMalformedPayload(t *testing.T) {
	st := store.NewMemoryStore()

	bus := NewBus(NewEnvelopeTransport(st))
	defer bus.Close()

	var got atomic.Int32
	bus.Subscribe(func(Event) { got.Add(1) })

	require.NoError(t, st.Set(context.Background(), EnvelopeKey, "not json"))
	require.NoError(t, st.Set(context.Background(), EnvelopeKey, `{"origin":"x","type":"gadgets","action":"create","timestamp":1}`))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), got.Load())
}

func TestEnvelopeRoundTrip(t *testing.T) {
	ev := NewEvent(TypeInventory, ActionUpdate)
	raw := encodeEnvelope("origin-1", ev)

	origin, decoded, err := decodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, "origin-1", origin)
	assert.Equal(t, ev, decoded)
}

func TestDecodeEnvelopeRejectsInvalidEvent(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"origin":"x","type":"products","action":"create"}`))
	assert.Error(t, err)

	_, _, err = decodeEnvelope([]byte(`{broken`))
	assert.Error(t, err)
}
