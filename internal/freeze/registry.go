package freeze

import (
	"slices"
	"sync"
)

// MapID identifies one map of the host world.
type MapID int

// Registry owns the components of every loaded map. The host integration
// layer creates one and hands components to whatever needs them.
type Registry struct {
	mu    sync.RWMutex
	comps map[MapID]*Component
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{comps: make(map[MapID]*Component)}
}

// Add registers c under id, replacing any previous component.
func (r *Registry) Add(id MapID, c *Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comps[id] = c
}

// Get returns the component of map id.
func (r *Registry) Get(id MapID) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comps[id]
	return c, ok
}

// Remove forgets map id, typically when the map is unloaded.
func (r *Registry) Remove(id MapID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comps, id)
}

// IDs lists the registered maps in ascending order.
func (r *Registry) IDs() []MapID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]MapID, 0, len(r.comps))
	for id := range r.comps {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len reports how many maps are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comps)
}
