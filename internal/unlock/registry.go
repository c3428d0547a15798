// Package unlock tracks locked pickups until a button handler releases them.
package unlock

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

// Registry maps pickup serials to the schematic instance that spawned them.
type Registry struct {
	mu      sync.RWMutex
	pending map[uuid.UUID]schematic.Owner
}

var _ schematic.Registry = (*Registry)(nil)

func New() *Registry {
	return &Registry{pending: make(map[uuid.UUID]schematic.Owner)}
}

func (r *Registry) RegisterDeferredUnlock(serial uuid.UUID, owner schematic.Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[serial] = owner
}

// Owner returns the schematic instance holding serial locked.
func (r *Registry) Owner(serial uuid.UUID) (schematic.Owner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.pending[serial]
	return o, ok
}

// Release unlocks serial and reports whether it was locked.
func (r *Registry) Release(serial uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[serial]; !ok {
		return false
	}
	delete(r.pending, serial)
	return true
}

// ReleaseOwner unlocks every pickup of one schematic instance and returns
// how many were released.
func (r *Registry) ReleaseOwner(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for serial, o := range r.pending {
		if o.ID == id {
			delete(r.pending, serial)
			n++
		}
	}
	return n
}

// Snapshot copies the pending table.
func (r *Registry) Snapshot() map[uuid.UUID]schematic.Owner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[uuid.UUID]schematic.Owner, len(r.pending))
	for k, v := range r.pending {
		out[k] = v
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pending)
}
