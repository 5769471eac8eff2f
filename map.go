package serdes

import (
	"bytes"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Symbol is an atom-like map key. Records declared with Symbolize(true) read
// and emit Symbol keys instead of string keys.
type Symbol string

// MarshalText renders the symbol name, so symbol-keyed maps encode like
// string-keyed ones.
func (s Symbol) MarshalText() ([]byte, error) { return []byte(s), nil }

// Map is the insertion-ordered raw map produced by Project. Keys are strings or
// Symbols; values are primitives, nil, []any and nested *Map.
type Map struct {
	om *orderedmap.OrderedMap[any, any]
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{om: orderedmap.New[any, any]()} }

// Set stores value under key, keeping the original position of an existing key.
func (m *Map) Set(key, value any) { m.om.Set(key, value) }

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool) {
	if m == nil {
		return nil, false
	}
	return m.om.Get(key)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.om.Len()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	keys := make([]any, 0, m.Len())
	m.Range(func(k, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key, value any) bool) {
	if m == nil {
		return
	}
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Plain converts m, recursively, into native Go maps: map[string]any when all
// keys are strings, map[Symbol]any when all keys are symbols, map[any]any
// otherwise. Order is lost; use it for structural comparison.
func (m *Map) Plain() any {
	var strs, syms int
	m.Range(func(k, _ any) bool {
		switch k.(type) {
		case string:
			strs++
		case Symbol:
			syms++
		}
		return true
	})
	n := m.Len()
	switch {
	case syms == n && n > 0:
		out := make(map[Symbol]any, n)
		m.Range(func(k, v any) bool {
			out[k.(Symbol)] = plainValue(v)
			return true
		})
		return out
	case strs == n:
		out := make(map[string]any, n)
		m.Range(func(k, v any) bool {
			out[k.(string)] = plainValue(v)
			return true
		})
		return out
	}
	out := make(map[any]any, n)
	m.Range(func(k, v any) bool {
		out[k] = plainValue(v)
		return true
	})
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Plain()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}

// keyString renders a key for text encodings.
func keyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case Symbol:
		return string(t)
	}
	return inspect(k)
}

// MarshalJSON encodes m as a JSON object preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	m.Range(func(k, v any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var kb, vb []byte
		if kb, err = json.Marshal(keyString(k)); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes m as a YAML mapping preserving key order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Range(func(k, v any) bool {
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: keyString(k)}
		vn := &yaml.Node{}
		if err = vn.Encode(v); err != nil {
			return false
		}
		node.Content = append(node.Content, kn, vn)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// rawLookup reads key from one of the accepted raw map forms. It reports
// ok=false when raw is not a map.
func rawLookup(raw any, key any) (val any, present bool, ok bool) {
	switch m := raw.(type) {
	case map[string]any:
		k, isStr := key.(string)
		if !isStr {
			return nil, false, true
		}
		val, present = m[k]
		return val, present, true
	case map[Symbol]any:
		k, isSym := key.(Symbol)
		if !isSym {
			return nil, false, true
		}
		val, present = m[k]
		return val, present, true
	case map[any]any:
		val, present = m[key]
		return val, present, true
	case *Map:
		if m == nil {
			return nil, false, false
		}
		val, present = m.Get(key)
		return val, present, true
	}
	return nil, false, false
}

// rawKeys lists the keys of a raw map.
func rawKeys(raw any) []any {
	var keys []any
	switch m := raw.(type) {
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[Symbol]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[any]any:
		for k := range m {
			keys = append(keys, k)
		}
	case *Map:
		keys = m.Keys()
	}
	return keys
}
