// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-basic-utils/src/iter.rs (arti FilterCount/CountingFilter)
//

// Package countedmap implements a map that maintains, incrementally, a
// count of how many of its entries currently satisfy a predicate —
// the same bookkeeping idea as arti's FilterCount/CountingFilter, but
// applied to a mutable map instead of a one-shot iterator so that a
// caller can ask "how many entries are open" in O(1) even as entries
// move in and out of the "open" state over the map's lifetime.
package countedmap

// Predicate reports whether a stored value should count towards a
// Map's maintained total.
type Predicate[V any] func(V) bool

// Map is a map from K to V that maintains a running count of the
// entries for which Predicate currently returns true. V should
// normally be a pointer or other reference type: [Map.Mutate] calls
// fn with the stored value so it can be mutated in place, then
// re-evaluates the predicate to keep the count correct.
type Map[K comparable, V any] struct {
	entries map[K]V
	pred    Predicate[V]
	count   int
}

// New returns an empty Map whose maintained count tracks pred.
func New[K comparable, V any](pred Predicate[V]) *Map[K, V] {
	return &Map[K, V]{entries: make(map[K]V), pred: pred}
}

// Insert adds or replaces the entry for k, updating the maintained
// count for the predicate's value on v.
func (m *Map[K, V]) Insert(k K, v V) {
	if old, ok := m.entries[k]; ok && m.pred(old) {
		m.count--
	}
	m.entries[k] = v
	if m.pred(v) {
		m.count++
	}
}

// Get returns the value stored for k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Has reports whether k has an entry.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.entries[k]
	return ok
}

// Remove deletes the entry for k, if any, updating the maintained
// count accordingly, and returns the removed value.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	v, ok := m.entries[k]
	if !ok {
		return v, false
	}
	if m.pred(v) {
		m.count--
	}
	delete(m.entries, k)
	return v, true
}

// Mutate calls fn with the value stored for k, if any, then
// re-evaluates the predicate to keep the maintained count correct.
// It reports whether k had an entry.
func (m *Map[K, V]) Mutate(k K, fn func(V)) bool {
	v, ok := m.entries[k]
	if !ok {
		return false
	}
	before := m.pred(v)
	fn(v)
	after := m.pred(v)
	switch {
	case before && !after:
		m.count--
	case !before && after:
		m.count++
	}
	return true
}

// Count returns the number of entries currently satisfying the
// predicate.
func (m *Map[K, V]) Count() int {
	return m.count
}

// Len returns the total number of entries, whether or not they
// satisfy the predicate.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// All iterates over every entry in the map in unspecified order.
func (m *Map[K, V]) All(yield func(K, V) bool) {
	for k, v := range m.entries {
		if !yield(k, v) {
			return
		}
	}
}
