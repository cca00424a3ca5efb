// Package hashbag provides Map, an associative container whose string keys
// compare equal regardless of letter case while the casing of the most
// recently written key is preserved for output.
//
// A Map keeps two structures in step: an insertion-ordered storage keyed by
// the original-cased key, and a lookup index from the lowercased key to the
// original-cased key. Every mutating method updates both.
//
// A Map is not safe for concurrent use.
package hashbag

import (
	"fmt"
	"iter"
	"maps"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is a case-insensitive map from string keys to values of type V.
// The zero value is an empty Map ready to use.
type Map[V any] struct {
	storage *orderedmap.OrderedMap[string, V]
	lookup  map[string]string

	defaultValue V
	hasDefault   bool
	defaultFunc  func(key any) V
	equal        func(a, b V) bool
	capacity     int
}

// Entry is a single key/value pair as stored in a Map.
type Entry[V any] struct {
	Key   string
	Value V
}

// New returns an empty Map.
func New[V any](opts ...Option[V]) *Map[V] {
	m := &Map[V]{}
	for _, opt := range opts {
		opt(m)
	}
	m.reset(m.capacity)
	return m
}

// Of builds a Map from a flat sequence of alternating keys and values.
func Of[V any](kv ...any) (*Map[V], error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("%w for Map: %d", ErrOddArguments, len(kv))
	}
	m := New(WithCapacity[V](len(kv) / 2))
	for i := 0; i < len(kv); i += 2 {
		key, ok := keyString(kv[i])
		if !ok {
			return nil, invalidKeyError(kv[i])
		}
		value, err := valueOf[V](kv[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	return m, nil
}

// From builds a Map holding every pair of src.
func From[V any](src Source[V], opts ...Option[V]) (*Map[V], error) {
	m := New(opts...)
	if err := m.Replace(src); err != nil {
		return nil, err
	}
	return m, nil
}

func valueOf[V any](v any) (V, error) {
	if value, ok := v.(V); ok {
		return value, nil
	}
	var zero V
	if v == nil && any(zero) == nil {
		// V is an interface type, nil is its zero value.
		return zero, nil
	}
	return zero, fmt.Errorf("%w: can't use %T as %s", ErrInvalidValueType, v, reflect.TypeFor[V]())
}

func (m *Map[V]) reset(capacity int) {
	m.storage = orderedmap.New[string, V](orderedmap.WithCapacity[string, V](capacity))
	m.lookup = make(map[string]string, capacity)
}

func (m *Map[V]) ensure() {
	if m.storage == nil {
		m.reset(m.capacity)
	}
}

// derive returns an empty Map with the same defaults and equality as m.
func (m *Map[V]) derive(capacity int) *Map[V] {
	d := &Map[V]{
		defaultValue: m.defaultValue,
		hasDefault:   m.hasDefault,
		defaultFunc:  m.defaultFunc,
		equal:        m.equal,
	}
	d.reset(capacity)
	return d
}

func (m *Map[V]) valuesEqual(a, b V) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}

// Default returns the value reads yield for an absent key.
func (m *Map[V]) Default(key any) V {
	switch {
	case m.hasDefault:
		return m.defaultValue
	case m.defaultFunc != nil:
		return m.defaultFunc(key)
	}
	var zero V
	return zero
}

// Lookup returns the value stored under key, ignoring case, and whether it was present.
func (m *Map[V]) Lookup(key string) (V, bool) {
	original, ok := m.lookup[fold(key)]
	if !ok {
		var zero V
		return zero, false
	}
	return m.storage.Get(original)
}

// Get returns the value stored under key, ignoring case, or the default.
func (m *Map[V]) Get(key string) V {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return m.Default(key)
}

// GetAny is Get for keys of any type. Keys that are not string-like are
// treated as absent.
func (m *Map[V]) GetAny(key any) V {
	if s, ok := keyString(key); ok {
		if v, ok := m.Lookup(s); ok {
			return v
		}
	}
	return m.Default(key)
}

// Set stores value under key and returns value. An existing entry whose key
// differs only in case is removed first, so key's casing replaces it and the
// entry moves to the end of the iteration order.
func (m *Map[V]) Set(key string, value V) V {
	m.ensure()
	m.remove(key)
	m.storage.Set(key, value)
	m.lookup[fold(key)] = key
	return value
}

// SetAny is Set for keys of any type. It fails with ErrInvalidKeyType when
// key is not string-like.
func (m *Map[V]) SetAny(key any, value V) (V, error) {
	s, ok := keyString(key)
	if !ok {
		var zero V
		return zero, invalidKeyError(key)
	}
	return m.Set(s, value), nil
}

// Has reports whether key is present, ignoring case.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.lookup[fold(key)]
	return ok
}

// HasAny is Has for keys of any type.
func (m *Map[V]) HasAny(key any) bool {
	s, ok := keyString(key)
	return ok && m.Has(s)
}

// HasValue reports whether any entry holds v.
func (m *Map[V]) HasValue(v V) bool {
	_, ok := m.KeyOf(v)
	return ok
}

// remove deletes the entry matching key from both lookup and storage.
func (m *Map[V]) remove(key string) (V, bool) {
	folded := fold(key)
	original, ok := m.lookup[folded]
	if !ok {
		var zero V
		return zero, false
	}
	delete(m.lookup, folded)
	return m.storage.Delete(original)
}

// Delete removes key, ignoring case, and returns its value. When key is
// absent it returns the default.
func (m *Map[V]) Delete(key string) V {
	if v, ok := m.remove(key); ok {
		return v
	}
	return m.Default(key)
}

// DeleteOr is Delete with a fallback called when key is absent.
func (m *Map[V]) DeleteOr(key string, fallback func(key string) V) V {
	if v, ok := m.remove(key); ok {
		return v
	}
	if fallback != nil {
		return fallback(key)
	}
	return m.Default(key)
}

// DeleteAny is Delete for keys of any type.
func (m *Map[V]) DeleteAny(key any) V {
	if s, ok := keyString(key); ok {
		if v, ok := m.remove(s); ok {
			return v
		}
	}
	return m.Default(key)
}

// Fetch returns the value under key or ErrKeyNotFound. Defaults are not consulted.
func (m *Map[V]) Fetch(key string) (V, error) {
	if v, ok := m.Lookup(key); ok {
		return v, nil
	}
	var zero V
	return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

// FetchOr returns the value under key or fallback.
func (m *Map[V]) FetchOr(key string, fallback V) V {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return fallback
}

// FetchFunc returns the value under key or fn(key).
func (m *Map[V]) FetchFunc(key string, fn func(key string) V) V {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return fn(key)
}

// Shift removes and returns the oldest entry.
func (m *Map[V]) Shift() (Entry[V], bool) {
	if m.storage == nil {
		return Entry[V]{}, false
	}
	oldest := m.storage.Oldest()
	if oldest == nil {
		return Entry[V]{}, false
	}
	e := Entry[V]{Key: oldest.Key, Value: oldest.Value}
	m.remove(e.Key)
	return e, true
}

// KeyOf returns the first key, in iteration order, whose value equals v.
// It scans every entry.
func (m *Map[V]) KeyOf(v V) (string, bool) {
	for key, value := range m.All() {
		if m.valuesEqual(value, v) {
			return key, true
		}
	}
	return "", false
}

// ValuesAt returns the values for keys, in the order given.
func (m *Map[V]) ValuesAt(keys ...string) []V {
	values := make([]V, 0, len(keys))
	for _, key := range keys {
		values = append(values, m.Get(key))
	}
	return values
}

// Indexes is not supported; use Select.
func (m *Map[V]) Indexes(values ...V) ([]string, error) {
	return nil, fmt.Errorf("%w: use Map.Select instead", ErrUnsupported)
}

// Clear removes every entry. Defaults are kept.
func (m *Map[V]) Clear() *Map[V] {
	m.reset(0)
	return m
}

// Clone returns a copy of m. The copy's entries are independent of m's;
// the default value, default func and equality are shared.
func (m *Map[V]) Clone() *Map[V] {
	c := m.derive(m.Len())
	for key, value := range m.All() {
		c.storage.Set(key, value)
	}
	maps.Copy(c.lookup, m.lookup)
	return c
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m.storage == nil {
		return 0
	}
	return m.storage.Len()
}

func (m *Map[V]) IsEmpty() bool {
	return m.Len() == 0
}

// All iterates over the entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m.storage == nil {
			return
		}
		for p := m.storage.Oldest(); p != nil; {
			next := p.Next()
			if !yield(p.Key, p.Value) {
				return
			}
			p = next
		}
	}
}

// ToMap returns the entries as a plain map keyed by original-cased keys.
func (m *Map[V]) ToMap() map[string]V {
	out := make(map[string]V, m.Len())
	for key, value := range m.All() {
		out[key] = value
	}
	return out
}
