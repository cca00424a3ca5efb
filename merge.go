package hashbag

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Source is anything that yields key/value pairs: a *Map or a Plain map.
// Keys are untyped so that plain maps with non-string keys can be compared
// and rejected like any other input.
type Source[V any] interface {
	Pairs() iter.Seq2[any, V]
}

// ConflictFunc resolves a key present on both sides of a merge.
type ConflictFunc[V any] func(key string, existing, incoming V) V

// Plain adapts an ordinary Go map, such as http.Header, into a Source.
// Pairs are yielded sorted by the fmt.Sprint form of their keys.
type Plain[K comparable, V any] map[K]V

func (p Plain[K, V]) Pairs() iter.Seq2[any, V] {
	keys := slices.SortedFunc(maps.Keys(p), func(a, b K) int {
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})
	return func(yield func(any, V) bool) {
		for _, key := range keys {
			if !yield(key, p[key]) {
				return
			}
		}
	}
}

// Pairs makes *Map a Source.
func (m *Map[V]) Pairs() iter.Seq2[any, V] {
	return func(yield func(any, V) bool) {
		if m == nil {
			return
		}
		for key, value := range m.All() {
			if !yield(key, value) {
				return
			}
		}
	}
}

type ordered[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

func (o ordered[V]) Pairs() iter.Seq2[any, V] {
	return func(yield func(any, V) bool) {
		for p := o.om.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// entriesOf snapshots src, failing on the first key that is not string-like.
func entriesOf[V any](src Source[V]) ([]Entry[V], error) {
	if src == nil {
		return nil, nil
	}
	var entries []Entry[V]
	for key, value := range src.Pairs() {
		s, ok := keyString(key)
		if !ok {
			return nil, invalidKeyError(key)
		}
		entries = append(entries, Entry[V]{Key: s, Value: value})
	}
	return entries, nil
}

// Replace clears m and stores every pair of other. Keys are validated before
// anything is cleared, so m is unchanged when an error is returned.
func (m *Map[V]) Replace(other Source[V]) error {
	entries, err := entriesOf(other)
	if err != nil {
		return err
	}
	m.reset(len(entries))
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return nil
}

// Merge returns a copy of m with the pairs of other stored over it, in
// other's order. When resolve is non-nil and a key already exists in the
// copy, the stored value is resolve(key, existing, incoming).
func (m *Map[V]) Merge(other Source[V], resolve ConflictFunc[V]) (*Map[V], error) {
	entries, err := entriesOf(other)
	if err != nil {
		return nil, err
	}
	merged := m.Clone()
	for _, e := range entries {
		if existing, ok := merged.Lookup(e.Key); ok && resolve != nil {
			merged.Set(e.Key, resolve(e.Key, existing, e.Value))
			continue
		}
		merged.Set(e.Key, e.Value)
	}
	return merged, nil
}

// Update is Merge applied to m itself: the merged result replaces m's contents.
func (m *Map[V]) Update(other Source[V], resolve ConflictFunc[V]) error {
	merged, err := m.Merge(other, resolve)
	if err != nil {
		return err
	}
	return m.Replace(merged)
}

// Equal reports whether m and other hold the same values under the same keys,
// ignoring case on both sides. It is false if other has a key that is not
// string-like.
func (m *Map[V]) Equal(other Source[V]) bool {
	theirs := make(map[string]V)
	if other != nil {
		for key, value := range other.Pairs() {
			s, ok := keyString(key)
			if !ok {
				return false
			}
			theirs[fold(s)] = value
		}
	}
	if len(theirs) != m.Len() {
		return false
	}
	for key, value := range m.All() {
		v, ok := theirs[fold(key)]
		if !ok || !m.valuesEqual(value, v) {
			return false
		}
	}
	return true
}
