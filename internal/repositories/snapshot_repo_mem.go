package repositories

import "sync"

// InMemorySnapshotRepository is an in-memory implementation of
// SnapshotRepository.
type InMemorySnapshotRepository struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewInMemorySnapshotRepository creates a new instance of
// InMemorySnapshotRepository.
func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		entries: make(map[string][]byte),
	}
}

// Load reads the value stored under key, or (nil, nil) if the key is absent.
func (r *InMemorySnapshotRepository) Load(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save writes value under key, replacing any previous value.
func (r *InMemorySnapshotRepository) Save(key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	r.entries[key] = stored
	return nil
}

// Delete removes the value stored under key; absent keys are a no-op.
func (r *InMemorySnapshotRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}
