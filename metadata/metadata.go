package metadata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/textproto"
	"slices"
	"strconv"
	"strings"

	"github.com/sporkmonger/hashbag"
)

var ErrUnsupportedValue = errors.New("unsupported value type")

// Metadata is a header-style collection. Keys are case-insensitive and keep
// the casing they were last written with. The zero value is ready to use.
type Metadata struct {
	m *hashbag.Map[any]
}

func New() *Metadata {
	return &Metadata{m: hashbag.New[any]()}
}

// FromMap builds Metadata from a plain map, storing keys in sorted order.
func FromMap(src map[string]any) *Metadata {
	md := New()
	for _, key := range slices.Sorted(maps.Keys(src)) {
		md.Set(key, src[key])
	}
	return md
}

// FromHeader copies h into a new Metadata.
func FromHeader(h http.Header) *Metadata {
	md := New()
	for _, key := range slices.Sorted(maps.Keys(h)) {
		md.SetStrings(key, slices.Clone(h[key]))
	}
	return md
}

func (md *Metadata) entries() *hashbag.Map[any] {
	if md.m == nil {
		md.m = hashbag.New[any]()
	}
	return md.m
}

// Map exposes the underlying case-insensitive map.
func (md *Metadata) Map() *hashbag.Map[any] {
	return md.entries()
}

func (md *Metadata) Get(key string) any {
	return md.entries().Get(key)
}

func (md *Metadata) Del(key string) {
	md.entries().Delete(key)
}

func (md *Metadata) Has(key string) bool {
	return md.entries().Has(key)
}

func (md *Metadata) Len() int {
	return md.entries().Len()
}

func (md *Metadata) Set(key string, value any) {
	switch v := value.(type) {
	case string:
		md.SetString(key, v)
	case int64:
		md.SetInt64(key, v)
	case int:
		md.SetInt64(key, int64(v))
	case float64:
		md.SetFloat64(key, v)
	case bool:
		md.SetBool(key, v)
	case []string:
		md.SetStrings(key, v)
	case []byte:
		md.SetBytes(key, v)
	default:
		slog.Warn("unsupported value type", "key", key, "type", fmt.Sprintf("%T", value))
	}
}

// Keys returns the keys in insertion order.
func (md *Metadata) Keys() []string {
	return md.entries().Keys()
}

func (md *Metadata) Clone() *Metadata {
	return &Metadata{m: md.entries().Clone()}
}

func (md *Metadata) Merge(other *Metadata) *Metadata {
	// keys of a Map are always string-like, so merging cannot fail
	merged, _ := md.entries().Merge(other.entries(), nil)
	return &Metadata{m: merged}
}

func (md *Metadata) MergeInPlace(other *Metadata) {
	_ = md.entries().Update(other.entries(), nil)
}

// Equal reports whether md and other hold the same values, ignoring key case.
func (md *Metadata) Equal(other *Metadata) bool {
	return md.entries().Equal(other.entries())
}

func (md *Metadata) GetInt64(key string) (int64, bool) {
	value, ok := md.Get(key).(int64)
	return value, ok
}

func (md *Metadata) SetInt64(key string, value int64) {
	md.entries().Set(key, value)
}

func (md *Metadata) GetFloat64(key string) (float64, bool) {
	value, ok := md.Get(key).(float64)
	return value, ok
}

func (md *Metadata) SetFloat64(key string, value float64) {
	md.entries().Set(key, value)
}

func (md *Metadata) GetStrings(key string) []string {
	switch v := md.Get(key).(type) {
	case int64:
		return []string{strconv.FormatInt(v, 10)}
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case []string:
		return v
	case bool:
		return []string{strconv.FormatBool(v)}
	case []byte:
		return []string{base64.StdEncoding.EncodeToString(v)}
	default:
		return []string{}
	}
}

func (md *Metadata) GetString(key string) string {
	strs := md.GetStrings(key)
	if len(strs) > 0 {
		return strs[0]
	}
	return ""
}

func (md *Metadata) AddString(key string, value string) {
	strs, ok := md.Get(key).([]string)
	if !ok {
		md.SetString(key, value)
		return
	}
	md.SetStrings(key, append(slices.Clip(strs), value))
}

func (md *Metadata) SetString(key string, value string) {
	md.entries().Set(key, []string{value})
}

func (md *Metadata) SetStrings(key string, values []string) {
	md.entries().Set(key, values)
}

func (md *Metadata) GetBool(key string) (bool, bool) {
	value, ok := md.Get(key).(bool)
	return value, ok
}

func (md *Metadata) SetBool(key string, value bool) {
	md.entries().Set(key, value)
}

func (md *Metadata) GetBytes(key string) ([]byte, bool) {
	value, ok := md.Get(key).([]byte)
	return value, ok
}

func (md *Metadata) SetBytes(key string, value []byte) {
	md.entries().Set(key, value)
}

// Header converts md into an http.Header with canonical keys.
func (md *Metadata) Header() http.Header {
	h := make(http.Header, md.Len())
	for _, key := range md.Keys() {
		k := textproto.CanonicalMIMEHeaderKey(key)
		h[k] = append(h[k], md.GetStrings(key)...)
	}
	return h
}

func (md *Metadata) String() string {
	var sb strings.Builder
	for _, key := range md.Keys() {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(md.GetStrings(key), ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (md *Metadata) ContentType() string {
	return md.GetString("Content-Type")
}

func (md *Metadata) SetContentType(value string) {
	md.SetString("Content-Type", value)
}

func (md *Metadata) ContentLength() (int64, bool) {
	if n, ok := md.GetInt64("Content-Length"); ok {
		return n, true
	}
	n, err := strconv.ParseInt(md.GetString("Content-Length"), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (md *Metadata) SetContentLength(n int64) {
	md.SetInt64("Content-Length", n)
}

func (md *Metadata) ETag() string {
	return md.GetString("ETag")
}

func (md *Metadata) SetETag(value string) {
	md.SetString("ETag", value)
}
