package source

import (
	serdes "github.com/riseshia/serdes"
)

// KeysFor converts the keys of raw to the key type each record expects,
// following nested records through the field descriptors of s. Maps read by
// symbolized records get serdes.Symbol keys, all others keep string keys.
// Keys that match no field are converted but their values are left alone.
func KeysFor(s *serdes.Schema, raw map[string]any) any {
	return keysFor(s.Descriptor(), raw)
}

func keysFor(d serdes.Descriptor, v any) any {
	switch t := d.(type) {
	case serdes.Optional:
		return keysFor(t.Inner, v)
	case serdes.Array:
		seq, ok := v.([]any)
		if !ok {
			return keysFor(t.Elem, v)
		}
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = keysFor(t.Elem, e)
		}
		return out
	case serdes.Concrete:
		s, isRecord := t.Kind.(*serdes.Schema)
		m, isMap := v.(map[string]any)
		if isRecord && isMap {
			return recordKeys(s, m)
		}
	}
	return v
}

func recordKeys(s *serdes.Schema, m map[string]any) any {
	if s.Naming().Symbolized {
		out := make(map[serdes.Symbol]any, len(m))
		for k, e := range m {
			if f, ok := s.FieldByKey(serdes.Symbol(k)); ok {
				e = keysFor(f.Descriptor(), e)
			}
			out[serdes.Symbol(k)] = e
		}
		return out
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		if f, ok := s.FieldByKey(k); ok {
			e = keysFor(f.Descriptor(), e)
		}
		out[k] = e
	}
	return out
}
