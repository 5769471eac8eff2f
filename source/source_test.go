package source_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serdes "github.com/riseshia/serdes"
	"github.com/riseshia/serdes/source"
)

func TestDecodeJSON_KeepsNumberShapes(t *testing.T) {
	m, err := source.DecodeJSON([]byte(`{"port": 5432, "ratio": 0.5, "whole": 1.0, "big": 1e3, "tags": [1, "a", null], "nested": {"n": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, int64(5432), m["port"])
	assert.Equal(t, 0.5, m["ratio"])
	assert.Equal(t, float64(1), m["whole"])
	assert.Equal(t, float64(1000), m["big"])
	assert.Equal(t, []any{int64(1), "a", nil}, m["tags"])
	assert.Equal(t, map[string]any{"n": int64(2)}, m["nested"])
}

func TestDecodeJSON_RejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[1, 2]`, `"x"`, `null`} {
		_, err := source.DecodeJSON([]byte(doc))
		assert.ErrorIs(t, err, source.ErrNotObject, doc)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"a":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, source.ErrNotObject)

	for _, doc := range []string{`{"a": 1} {"b": 2}`, `{"a": 1} ]`, `{"a": 1} }`, `{"a": 1} x`} {
		_, err = source.DecodeJSON([]byte(doc))
		assert.Error(t, err, doc)
	}

	m, err := source.ReadJSON(strings.NewReader("{\"a\": 1}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m["a"])
}

func TestDecodeYAML(t *testing.T) {
	doc := `
adapter: mysql
port: 5432
ratio: 0.25
flag: true
tables:
  - name: users
    comment: null
1: numeric key
`
	m, err := source.DecodeYAML([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "mysql", m["adapter"])
	assert.Equal(t, int64(5432), m["port"])
	assert.Equal(t, 0.25, m["ratio"])
	assert.Equal(t, true, m["flag"])
	assert.Equal(t, []any{map[string]any{"name": "users", "comment": nil}}, m["tables"])
	assert.Equal(t, "numeric key", m["1"])
}

func TestReadYAML_Empty(t *testing.T) {
	_, err := source.ReadYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, source.ErrNotObject)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, source.YAML, source.FormatOf("config/db.yml"))
	assert.Equal(t, source.YAML, source.FormatOf("DB.YAML"))
	assert.Equal(t, source.JSON, source.FormatOf("db.json"))
	assert.Equal(t, source.JSON, source.FormatOf("db"))

	f, err := source.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", f.String())

	_, err = source.ParseFormat("toml")
	assert.Error(t, err)
}

func TestDecode_DispatchesOnFormat(t *testing.T) {
	m, err := source.Decode([]byte("a: 1\n"), source.YAML)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m["a"])

	m, err = source.Decode([]byte(`{"a": 1}`), source.JSON)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m["a"])
}

func TestSymbolize(t *testing.T) {
	in := map[string]any{
		"user": map[string]any{"name": "x"},
		"tags": []any{map[string]any{"k": 1}, "plain"},
	}
	got := source.Symbolize(in)
	want := map[serdes.Symbol]any{
		"user": map[serdes.Symbol]any{"name": "x"},
		"tags": []any{map[serdes.Symbol]any{"k": 1}, "plain"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "scalar", source.Symbolize("scalar"))
}

func TestDecodedInputConstructs(t *testing.T) {
	s := serdes.Declare("Database").
		Field("adapter", serdes.String, serdes.OneOf("mysql", "postgresql")).
		Field("port", serdes.Integer).
		MustBuild()

	m, err := source.DecodeJSON([]byte(`{"adapter": "mysql", "port": 3306}`))
	require.NoError(t, err)
	in, err := s.Construct(m)
	require.NoError(t, err)
	assert.Equal(t, int64(3306), in.Get("port"))

	m, err = source.DecodeJSON([]byte(`{"adapter": "mysql", "port": 3306.5}`))
	require.NoError(t, err)
	_, err = s.Construct(m)
	assert.ErrorIs(t, err, serdes.ErrType)
}

func TestCheckDuplicateKeys(t *testing.T) {
	tests := []struct {
		doc  string
		path string
	}{
		{`{"a": 1, "a": 2}`, "/a"},
		{`{"a": {"b": 1, "c": [1, 2], "b": 2}}`, "/a/b"},
		{`{"list": [{"x": 1}, {"y": 1, "y": 2}]}`, "/list/1/y"},
		{`{"a/b": {"k": 1, "k": 1}}`, "/a~1b/k"},
	}
	for _, tt := range tests {
		err := source.CheckDuplicateKeys([]byte(tt.doc))
		var dup *source.DuplicateKeyError
		require.ErrorAs(t, err, &dup, tt.doc)
		assert.Equal(t, tt.path, dup.Path, tt.doc)
	}

	assert.NoError(t, source.CheckDuplicateKeys([]byte(`{"a": {"a": 1}, "b": [{"a": 1}, {"a": 2}]}`)))
	assert.Error(t, source.CheckDuplicateKeys([]byte(`{"a": `)))
}

func TestDecodeYAML_RejectsDuplicateKeys(t *testing.T) {
	_, err := source.DecodeYAML([]byte("a: 1\na: 2\n"))
	assert.Error(t, err)
}

func TestKeysFor(t *testing.T) {
	plain := serdes.Declare("Plain").Field("name", serdes.String).MustBuild()
	root := serdes.Declare("Root").
		Symbolize(true).
		Field("items", serdes.ArrayOf(plain)).
		Field("tags", serdes.ArrayOf(serdes.String)).
		MustBuild()

	got := source.KeysFor(root, map[string]any{
		"items": []any{map[string]any{"name": "a"}},
		"tags":  []any{"t"},
		"extra": map[string]any{"k": 1},
	})
	want := map[serdes.Symbol]any{
		"items": []any{map[string]any{"name": "a"}},
		"tags":  []any{"t"},
		"extra": map[string]any{"k": 1},
	}
	assert.Equal(t, want, got)
}
