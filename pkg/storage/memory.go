package storage

import (
	"sync"

	"github.com/xetdata/docker-volume-xetfs/pkg/errdefs"
	"github.com/xetdata/docker-volume-xetfs/pkg/types"
)

// MemoryStore implements Store with a map guarded by a RWMutex. Writers
// exclude all other access; readers proceed concurrently.
type MemoryStore struct {
	mu      sync.RWMutex
	volumes map[string]*types.Volume
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		volumes: make(map[string]*types.Volume),
	}
}

// Insert stores a copy of v under name
func (s *MemoryStore) Insert(name string, v *types.Volume) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volumes[name] = v.Copy()
}

// Remove deletes the record for name
func (s *MemoryStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.volumes[name]; !ok {
		return errdefs.NotFound(name)
	}
	delete(s.volumes, name)
	return nil
}

// Get returns a copy of the record for name
func (s *MemoryStore) Get(name string) (*types.Volume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.volumes[name]
	if !ok {
		return nil, errdefs.NotFound(name)
	}
	return v.Copy(), nil
}

// List returns copies of all records
func (s *MemoryStore) List() map[string]*types.Volume {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*types.Volume, len(s.volumes))
	for name, v := range s.volumes {
		out[name] = v.Copy()
	}
	return out
}

// Len returns the number of registered volumes
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.volumes)
}
