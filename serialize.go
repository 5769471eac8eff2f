package serdes

// Project converts an instance into a raw map. Fields are emitted in
// declaration order under their external keys; the skip options omit fields.
// Nested records are projected recursively and sequences element-wise.
// Values that are neither primitives, records nor sequences of them fail with
// ErrSerialize.
func (s *Schema) Project(in *Instance) (*Map, error) {
	if in == nil || in.schema != s {
		return nil, newError(&Error{Code: CodeSerialize, Record: s.name, Actual: humanize(in)}, nil)
	}
	out := NewMap()
	for _, attr := range s.fields {
		v := in.values[attr.index]
		if attr.skip(v) {
			continue
		}
		pv, ok, err := emit(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(&Error{
				Code:   CodeSerialize,
				Record: s.name,
				Field:  attr.name,
				Actual: humanize(v),
				Value:  v,
			}, nil)
		}
		out.Set(attr.key, pv)
	}
	return out, nil
}

// emit transforms one value for output. ok is false for unsupported shapes.
func emit(v any) (any, bool, error) {
	switch t := v.(type) {
	case nil, string, bool:
		return v, true, nil
	case *Instance:
		if t == nil {
			return nil, true, nil
		}
		m, err := t.schema.Project(t)
		return m, err == nil, err
	}
	if isInteger(v) || isFloat(v) {
		return v, true, nil
	}
	if isSequence(v) {
		out := []any{}
		ok := true
		var err error
		eachElem(v, func(_ int, e any) bool {
			var pe any
			pe, ok, err = emit(e)
			if !ok || err != nil {
				return false
			}
			out = append(out, pe)
			return true
		})
		return out, ok, err
	}
	return nil, false, nil
}
