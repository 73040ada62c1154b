package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// MemoryStore is an in-process Store. A single instance shared between
// several repositories and transports stands in for one storage origin with
// several attached execution contexts, which is how tests simulate
// concurrent tabs.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	watchers map[string][]chan string
	closed   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]string),
		watchers: make(map[string][]chan string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value

	// Non-blocking fan-out under the lock: the sends cannot block, and
	// Watch cancellation closes channels under the same lock, so a send
	// can never race a close. A watcher that cannot keep up loses updates
	// rather than stalling the writer.
	for _, ch := range s.watchers[key] {
		select {
		case ch <- value:
		default:
			log.Warn().Str("key", key).Msg("store watcher buffer full, dropping update")
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context, key string) (<-chan string, error) {
	ch := make(chan string, 16)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		ws := s.watchers[key]
		for i, w := range ws {
			if w == ch {
				s.watchers[key] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		// Closed under the lock so a concurrent Set can never send on a
		// channel that is already closed.
		close(ch)
	}()

	return ch, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
