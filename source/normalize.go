package source

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	serdes "github.com/riseshia/serdes"
)

// Format is a document encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat resolves "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("source: unknown format %q", name)
}

// FormatOf picks the format from a file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Decode decodes data in the given format into a raw map.
func Decode(data []byte, f Format) (map[string]any, error) {
	if f == YAML {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// normalize rewrites decoder output into the native shapes Construct expects.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return int64(t)
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}

// Symbolize converts string keys into serdes.Symbol keys, recursively through
// nested maps and sequences. Use KeysFor when records disagree on key types.
func Symbolize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[serdes.Symbol]any, len(t))
		for k, e := range t {
			out[serdes.Symbol(k)] = Symbolize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Symbolize(e)
		}
		return out
	}
	return v
}
