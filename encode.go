package hashbag

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// String renders m the way fmt renders the equivalent plain map.
func (m *Map[V]) String() string {
	if m == nil {
		return fmt.Sprint(map[string]V(nil))
	}
	return fmt.Sprint(m.ToMap())
}

func (m *Map[V]) GoString() string {
	if m == nil {
		return fmt.Sprintf("%#v", map[string]V(nil))
	}
	return fmt.Sprintf("%#v", m.ToMap())
}

// MarshalJSON encodes m as a JSON object in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	if m.storage == nil {
		return []byte("{}"), nil
	}
	return m.storage.MarshalJSON()
}

// UnmarshalJSON replaces the contents of m with a JSON object. When two
// members differ only in case, the later one wins.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	decoded := orderedmap.New[string, V]()
	if err := decoded.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("unmarshal map: %w", err)
	}
	return m.Replace(ordered[V]{om: decoded})
}

// MarshalYAML encodes m as a YAML mapping in insertion order.
func (m *Map[V]) MarshalYAML() (any, error) {
	if m == nil || m.storage == nil {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}
	return m.storage.MarshalYAML()
}

// UnmarshalYAML replaces the contents of m with a YAML mapping.
func (m *Map[V]) UnmarshalYAML(value *yaml.Node) error {
	decoded := orderedmap.New[string, V]()
	if err := decoded.UnmarshalYAML(value); err != nil {
		return fmt.Errorf("unmarshal map: %w", err)
	}
	return m.Replace(ordered[V]{om: decoded})
}
