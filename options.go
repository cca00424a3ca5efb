package hashbag

// Option configures a Map at construction.
type Option[V any] func(*Map[V])

// WithDefault makes reads of absent keys return v.
func WithDefault[V any](v V) Option[V] {
	return func(m *Map[V]) {
		m.defaultValue = v
		m.hasDefault = true
		m.defaultFunc = nil
	}
}

// WithDefaultFunc makes reads of absent keys return f(key). The key is passed
// as given by the caller, so f may see keys that are not string-like.
func WithDefaultFunc[V any](f func(key any) V) Option[V] {
	return func(m *Map[V]) {
		m.defaultFunc = f
		m.hasDefault = false
		var zero V
		m.defaultValue = zero
	}
}

// WithEqualFunc sets the value equality used by Equal, KeyOf and HasValue.
// The default is reflect.DeepEqual.
func WithEqualFunc[V any](f func(a, b V) bool) Option[V] {
	return func(m *Map[V]) {
		m.equal = f
	}
}

// WithCapacity gives a capacity hint for the initial storage.
func WithCapacity[V any](n int) Option[V] {
	return func(m *Map[V]) {
		m.capacity = n
	}
}
