package hashbag

import (
	"slices"
	"strings"
)

// Keys returns the original-cased keys in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	for key := range m.All() {
		keys = append(keys, key)
	}
	return keys
}

// Values returns the values in insertion order.
func (m *Map[V]) Values() []V {
	values := make([]V, 0, m.Len())
	for _, value := range m.All() {
		values = append(values, value)
	}
	return values
}

// Entries returns the entries in insertion order.
func (m *Map[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, m.Len())
	for key, value := range m.All() {
		entries = append(entries, Entry[V]{Key: key, Value: value})
	}
	return entries
}

// Each calls fn for every entry and returns m.
func (m *Map[V]) Each(fn func(key string, value V)) *Map[V] {
	for key, value := range m.All() {
		fn(key, value)
	}
	return m
}

// Select returns a new Map with the entries for which keep returns true.
func (m *Map[V]) Select(keep func(key string, value V) bool) *Map[V] {
	out := m.derive(0)
	for key, value := range m.All() {
		if keep(key, value) {
			out.Set(key, value)
		}
	}
	return out
}

// Reject returns a new Map without the entries for which drop returns true.
func (m *Map[V]) Reject(drop func(key string, value V) bool) *Map[V] {
	return m.Select(func(key string, value V) bool {
		return !drop(key, value)
	})
}

// DeleteIf removes the entries for which drop returns true and returns m.
func (m *Map[V]) DeleteIf(drop func(key string, value V) bool) *Map[V] {
	m.removeFunc(drop)
	return m
}

// RejectInPlace removes the entries for which drop returns true. It returns
// false when nothing was removed.
func (m *Map[V]) RejectInPlace(drop func(key string, value V) bool) bool {
	return m.removeFunc(drop) > 0
}

// SelectInPlace keeps only the entries for which keep returns true. It returns
// false when nothing was removed.
func (m *Map[V]) SelectInPlace(keep func(key string, value V) bool) bool {
	return m.removeFunc(func(key string, value V) bool {
		return !keep(key, value)
	}) > 0
}

func (m *Map[V]) removeFunc(drop func(key string, value V) bool) int {
	var doomed []string
	for key, value := range m.All() {
		if drop(key, value) {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		m.remove(key)
	}
	return len(doomed)
}

// Sort returns the entries ordered by key, compared byte-wise.
func (m *Map[V]) Sort() []Entry[V] {
	entries := m.Entries()
	slices.SortFunc(entries, func(a, b Entry[V]) int {
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}

// Invert returns a plain map from each value to its key. When several keys
// hold the same value, the last one in iteration order wins.
func Invert[V comparable](m *Map[V]) map[V]string {
	out := make(map[V]string, m.Len())
	for key, value := range m.All() {
		out[value] = key
	}
	return out
}
