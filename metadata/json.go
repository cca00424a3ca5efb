package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/sporkmonger/hashbag"
	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema describes the JSON form of Metadata: an object whose members
// are strings, numbers, booleans or arrays of strings.
func (*Metadata) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AdditionalProperties: &jsonschema.Schema{
			AnyOf: []*jsonschema.Schema{
				{Type: "string"},
				{Type: "number"},
				{Type: "boolean"},
				{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			},
		},
		Type:        "object",
		Description: "Case-insensitive header-style metadata.",
	}
}

// Validate checks data against the Metadata JSON schema.
func Validate(data []byte) error {
	schema, err := json.Marshal((*Metadata)(nil).JSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate metadata: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			errs = append(errs, e.String())
		}
		slog.Debug("metadata schema validation failed", "errors", errs)
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, strings.Join(errs, "; "))
	}
	return nil
}

// MarshalJSON encodes md as a JSON object in insertion order.
func (md *Metadata) MarshalJSON() ([]byte, error) {
	return md.entries().MarshalJSON()
}

// UnmarshalJSON decodes a JSON object into md after validating it. Integral
// numbers become int64, other numbers float64, strings become single-value
// string lists.
func (md *Metadata) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := Validate(data); err != nil {
		return err
	}
	raw := hashbag.New[any]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	for key, value := range raw.All() {
		switch v := value.(type) {
		case string:
			md.SetString(key, v)
		case float64:
			if float64(int64(v)) == v {
				md.SetInt64(key, int64(v))
			} else {
				md.SetFloat64(key, v)
			}
		case bool:
			md.SetBool(key, v)
		case []any:
			strs := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("%w: %s holds %T", ErrUnsupportedValue, key, item)
				}
				strs = append(strs, s)
			}
			md.SetStrings(key, strs)
		default:
			return fmt.Errorf("%w: %s holds %T", ErrUnsupportedValue, key, value)
		}
	}
	return nil
}
