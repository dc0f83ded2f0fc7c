package assets

import (
	"maps"
	"slices"
	"sync"

	"github.com/Faultbox/ron/internal/engine/resource"
)

// registry deduplicates loads by key. Entries live in an arena indexed by
// resource ID so a released ID can be told apart from a live one.
type registry[K comparable, V any] struct {
	ids   map[K]resource.ID
	arena map[resource.ID]slot[K, V]
	mu    sync.RWMutex

	// Stats
	hits   int
	misses int
}

type slot[K comparable, V any] struct {
	key   K
	value V
}

func newRegistry[K comparable, V any]() *registry[K, V] {
	return &registry[K, V]{
		ids:   make(map[K]resource.ID),
		arena: make(map[resource.ID]slot[K, V]),
	}
}

// get retrieves the value registered for key.
func (r *registry[K, V]) get(key K) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.ids[key]
	if !ok {
		r.misses++
		var zero V
		return zero, false
	}
	r.hits++
	return r.arena[id].value, true
}

// put registers value under key and id, replacing any previous entry for key.
func (r *registry[K, V]) put(key K, id resource.ID, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.ids[key]; ok {
		delete(r.arena, old)
	}
	r.ids[key] = id
	r.arena[id] = slot[K, V]{key: key, value: value}
}

func (r *registry[K, V]) alive(id resource.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.arena[id]
	return ok
}

func (r *registry[K, V]) release(id resource.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.arena[id]
	if !ok {
		return false
	}
	delete(r.arena, id)
	delete(r.ids, s.key)
	return true
}

// each visits entries in load order. fn must not call back into r.
func (r *registry[K, V]) each(fn func(K, V)) {
	r.mu.RLock()
	ids := slices.Sorted(maps.Keys(r.arena))
	slots := make([]slot[K, V], len(ids))
	for i, id := range ids {
		slots[i] = r.arena[id]
	}
	r.mu.RUnlock()

	for _, s := range slots {
		fn(s.key, s.value)
	}
}

func (r *registry[K, V]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.arena)
}

func (r *registry[K, V]) stats() (hits, misses int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits, r.misses
}
