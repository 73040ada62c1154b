package datasync

import (
	"context"
	"sync"
)

// Loopback links buses within one process, standing in for a broker when no
// external transport is configured. Each Attach call produces the transport
// for one execution context; publishing on one delivers synchronously to
// every other attached context, never back to the publisher.
type Loopback struct {
	mu      sync.Mutex
	members []*LoopbackTransport
}

// NewLoopback creates an empty loopback hub.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Attach creates a transport joined to this hub.
func (l *Loopback) Attach() *LoopbackTransport {
	t := &LoopbackTransport{hub: l}
	l.mu.Lock()
	l.members = append(l.members, t)
	l.mu.Unlock()
	return t
}

// LoopbackTransport is one context's end of a Loopback hub.
type LoopbackTransport struct {
	hub *Loopback

	mu      sync.Mutex
	deliver func(Event)
}

func (t *LoopbackTransport) Start(ctx context.Context, deliver func(Event)) error {
	t.mu.Lock()
	t.deliver = deliver
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		t.deliver = nil
		t.mu.Unlock()
	}()
	return nil
}

func (t *LoopbackTransport) Publish(ctx context.Context, ev Event) error {
	t.hub.mu.Lock()
	members := make([]*LoopbackTransport, len(t.hub.members))
	copy(members, t.hub.members)
	t.hub.mu.Unlock()

	for _, m := range members {
		if m == t {
			continue
		}
		m.mu.Lock()
		deliver := m.deliver
		m.mu.Unlock()
		if deliver != nil {
			deliver(ev)
		}
	}
	return nil
}

func (t *LoopbackTransport) Close() error {
	t.hub.mu.Lock()
	defer t.hub.mu.Unlock()
	for i, m := range t.hub.members {
		if m == t {
			t.hub.members = append(t.hub.members[:i], t.hub.members[i+1:]...)
			break
		}
	}
	return nil
}
