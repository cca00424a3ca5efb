package hashbag_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/sporkmonger/hashbag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMap__Format(t *testing.T) {
	m := headers(t, hashbag.New[string]())
	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata/fixtures"),
	)
	g.WithNameSuffix(".golden.txt")
	g.Assert(t, "string", []byte(m.String()))
	g.Assert(t, "gostring", []byte(fmt.Sprintf("%#v", m)))
	g.Assert(t, "verb_v", []byte(fmt.Sprintf("%v", m)))
}

func TestMap__MarshalJSON(t *testing.T) {
	m := headers(t, hashbag.New[string]())
	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata/fixtures"),
		goldie.WithNameSuffix(".golden.json"),
	)
	g.AssertJson(t, "headers", m)

	data, err := json.Marshal(hashbag.New[string]())
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))

	var zero hashbag.Map[string]
	data, err = json.Marshal(&zero)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))

	var nilMap *hashbag.Map[string]
	data, err = json.Marshal(nilMap)
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

func TestMap__UnmarshalJSON(t *testing.T) {
	t.Run("keeps document order", func(t *testing.T) {
		m := hashbag.New[string]()
		err := json.Unmarshal([]byte(`{"X-XRDS-Location":"http://example.com/xrds/","Content-Type":"text/html; charset=UTF-8"}`), m)
		require.NoError(t, err)
		require.Equal(t, []string{"X-XRDS-Location", "Content-Type"}, m.Keys())
		require.Equal(t, contentType, m.Get("content-type"))
	})
	t.Run("later member wins on collision", func(t *testing.T) {
		m := hashbag.New[string]()
		require.NoError(t, json.Unmarshal([]byte(`{"a":"1","A":"2"}`), m))
		require.Equal(t, 1, m.Len())
		require.Equal(t, []string{"A"}, m.Keys())
		require.Equal(t, "2", m.Get("a"))
	})
	t.Run("replaces contents and keeps defaults", func(t *testing.T) {
		m := headers(t, hashbag.New(hashbag.WithDefault("missing")))
		require.NoError(t, json.Unmarshal([]byte(`{"ETag":"x"}`), m))
		require.Equal(t, []string{"ETag"}, m.Keys())
		require.Equal(t, "missing", m.Get("Content-Type"))
	})
	t.Run("null", func(t *testing.T) {
		m := headers(t, hashbag.New[string]())
		require.NoError(t, json.Unmarshal([]byte(`null`), m))
		require.Equal(t, 3, m.Len())
	})
	t.Run("struct field", func(t *testing.T) {
		var doc struct {
			Headers *hashbag.Map[[]string] `json:"headers"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"headers":{"Accept":["text/html","application/json"]}}`), &doc))
		require.Equal(t, []string{"text/html", "application/json"}, doc.Headers.Get("ACCEPT"))
	})
	t.Run("wrong value type", func(t *testing.T) {
		m := hashbag.New[int]()
		err := json.Unmarshal([]byte(`{"a":"not a number"}`), m)
		require.Error(t, err)
		require.True(t, m.IsEmpty())
	})
	t.Run("round trip", func(t *testing.T) {
		m := headers(t, hashbag.New[string]())
		data, err := json.Marshal(m)
		require.NoError(t, err)
		decoded := hashbag.New[string]()
		require.NoError(t, json.Unmarshal(data, decoded))
		require.Equal(t, m.Entries(), decoded.Entries())
	})
}

func TestMap__YAML(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m := headers(t, hashbag.New[string]())
		data, err := yaml.Marshal(m)
		require.NoError(t, err)
		decoded := hashbag.New[string]()
		require.NoError(t, yaml.Unmarshal(data, decoded))
		require.Equal(t, m.Entries(), decoded.Entries())
	})
	t.Run("later key wins on collision", func(t *testing.T) {
		m := hashbag.New[int]()
		require.NoError(t, yaml.Unmarshal([]byte("content-length: 1\nContent-Length: 2\n"), m))
		require.Equal(t, []string{"Content-Length"}, m.Keys())
		require.Equal(t, 2, m.Get("CONTENT-LENGTH"))
	})
	t.Run("empty", func(t *testing.T) {
		data, err := yaml.Marshal(hashbag.New[string]())
		require.NoError(t, err)
		require.Equal(t, "{}\n", string(data))
	})
	t.Run("nested in a document", func(t *testing.T) {
		var doc struct {
			Headers *hashbag.Map[string] `yaml:"headers"`
		}
		src := "headers:\n  ETag: abc\n  Content-Type: text/plain\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
		require.Equal(t, []string{"ETag", "Content-Type"}, doc.Headers.Keys())
		require.Equal(t, "abc", doc.Headers.Get("etag"))
	})
}
