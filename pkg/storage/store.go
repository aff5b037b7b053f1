package storage

import (
	"github.com/xetdata/docker-volume-xetfs/pkg/types"
)

// Store defines the interface for the volume registry. It is the only way
// volume records are read or written; implementations own all locking.
type Store interface {
	// Insert stores v under name, replacing any existing record
	Insert(name string, v *types.Volume)

	// Remove deletes the record for name, or returns errdefs.ErrNotFound
	Remove(name string) error

	// Get returns a copy of the record for name, or errdefs.ErrNotFound
	Get(name string) (*types.Volume, error)

	// List returns a snapshot of every record keyed by name
	List() map[string]*types.Volume

	// Len returns the number of registered volumes
	Len() int
}
