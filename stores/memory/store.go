package memory

import (
	"context"
	"sync"
)

// memBackend holds the last saved snapshot in memory. Useful for tests and
// for running without any durable storage configured.
type memBackend struct {
	mu   sync.RWMutex
	data []byte
}

// NewBackend creates a new in-memory snapshot backend.
func NewBackend() *memBackend {
	return &memBackend{}
}

func (b *memBackend) Load(ctx context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.data == nil {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *memBackend) Save(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}
