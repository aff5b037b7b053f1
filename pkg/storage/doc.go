/*
Package storage provides the volume registry: the process-wide map from
volume name to types.Volume shared by every plugin request.

The registry is purely in memory. It starts empty when the daemon starts and
is never written to disk, so volumes created before a restart are
forgotten.

# Concurrency

MemoryStore uses a single-writer/multi-reader discipline. Insert and Remove
take the write lock and exclude every other operation; Get, List and Len take
the read lock and may run together. Locks are held only for the map access
itself, so a caller that looks a volume up and then runs a slow mount does
not block unrelated requests.

Records are copied in and out. Nothing outside the store ever holds a
pointer into the map, which keeps "one record per name" enforceable here and
nowhere else.

# Usage

	store := storage.NewMemoryStore()
	store.Insert("v1", vol)

	v, err := store.Get("v1")
	if errors.Is(err, errdefs.ErrNotFound) {
		// not registered
	}
*/
package storage
