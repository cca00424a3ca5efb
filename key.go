package hashbag

import (
	"fmt"
	"reflect"
	"strings"
)

// fold normalizes a key for case-insensitive comparison.
func fold(key string) string {
	return strings.ToLower(key)
}

// keyString returns the text form of key and whether key is string-like.
// A key is string-like when it is a string, a []byte, a type whose
// underlying kind is string, or a fmt.Stringer.
func keyString(key any) (string, bool) {
	switch k := key.(type) {
	case nil:
		return "", false
	case string:
		return k, true
	case []byte:
		return string(k), true
	case fmt.Stringer:
		if v := reflect.ValueOf(k); v.Kind() == reflect.Pointer && v.IsNil() {
			return "", false
		}
		return k.String(), true
	}
	if v := reflect.ValueOf(key); v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

// IsStringLike reports whether key is accepted as a Map key by SetAny.
func IsStringLike(key any) bool {
	_, ok := keyString(key)
	return ok
}
