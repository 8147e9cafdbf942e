// Package registry provides the keyed collections that own loaded entities.
package registry

import (
	"cmp"
	"iter"
	"slices"
)

// Registry maps identifiers to entities and remembers the order in which they
// were put. Putting an existing key replaces the entity and moves the key to
// the end, so iteration order reflects load order with the last definition
// winning.
//
// A Registry is not safe for concurrent mutation. Loaded worlds are built on
// one goroutine and only read afterwards.
type Registry[K cmp.Ordered, V any] struct {
	items map[K]V
	order []K
}

// New creates an empty registry.
func New[K cmp.Ordered, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// Put stores v under k. If k was already present the previous value is
// returned with replaced set to true.
func (r *Registry[K, V]) Put(k K, v V) (old V, replaced bool) {
	old, replaced = r.items[k]
	if replaced {
		r.removeKey(k)
	}
	r.items[k] = v
	r.order = append(r.order, k)
	return old, replaced
}

// Get returns the value stored under k.
func (r *Registry[K, V]) Get(k K) (V, bool) {
	v, ok := r.items[k]
	return v, ok
}

// Has reports whether k is present.
func (r *Registry[K, V]) Has(k K) bool {
	_, ok := r.items[k]
	return ok
}

// Delete removes k and reports whether it was present.
func (r *Registry[K, V]) Delete(k K) bool {
	if _, ok := r.items[k]; !ok {
		return false
	}
	delete(r.items, k)
	r.removeKey(k)
	return true
}

func (r *Registry[K, V]) removeKey(k K) {
	if i := slices.Index(r.order, k); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Len returns the number of entries.
func (r *Registry[K, V]) Len() int {
	return len(r.items)
}

// Keys returns the keys in insertion order.
func (r *Registry[K, V]) Keys() []K {
	return slices.Clone(r.order)
}

// SortedKeys returns the keys in ascending order.
func (r *Registry[K, V]) SortedKeys() []K {
	keys := slices.Clone(r.order)
	slices.Sort(keys)
	return keys
}

// Values returns the values in insertion order.
func (r *Registry[K, V]) Values() []V {
	out := make([]V, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.items[k])
	}
	return out
}

// All iterates over entries in insertion order.
func (r *Registry[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Clone(r.order) {
			v, ok := r.items[k]
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}
