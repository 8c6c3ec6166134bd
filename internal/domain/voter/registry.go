package voter

import (
	"context"
	"sync"
)

// MemoryRegistry is a fixed national registry, used until a real lookup
// service is wired in.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryRegistry(seed map[string]string) *MemoryRegistry {
	entries := make(map[string]string, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &MemoryRegistry{entries: entries}
}

func (r *MemoryRegistry) Lookup(ctx context.Context, nationalID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.entries[nationalID]
	if !ok {
		return "", ErrNotInRegistry
	}
	return name, nil
}
