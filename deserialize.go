package serdes

import "sort"

// Construct builds an instance from a raw map. raw may be a map[string]any,
// map[Symbol]any, map[any]any or *Map; keys are looked up by each field's
// external key.
//
// Fields are processed in declaration order: the raw value is coerced against
// the field's descriptor and then assigned through the Validator. The first
// violation aborts construction. A non-optional field whose key is absent
// fails with ErrRequired.
func (s *Schema) Construct(raw any) (*Instance, error) {
	if _, _, ok := rawLookup(raw, nil); !ok {
		return nil, newError(&Error{
			Code:   CodeInvalidInput,
			Record: s.name,
			Actual: humanize(raw),
			Value:  raw,
		}, nil)
	}
	if s.strict {
		if err := s.checkUnknown(raw); err != nil {
			return nil, err
		}
	}
	in := s.New()
	for _, attr := range s.fields {
		path := pointerField(keyString(attr.key))
		rv, present, _ := rawLookup(raw, attr.key)
		if !present && !attr.Optional() {
			return nil, newError(&Error{
				Code:     CodeRequired,
				Record:   s.name,
				Field:    attr.name,
				Path:     path,
				Expected: attr.desc.String(),
			}, nil)
		}
		v, err := coerce(attr.desc, rv)
		if err != nil {
			return nil, rebase(err, path)
		}
		if err := in.assign(attr, v); err != nil {
			return nil, rebase(err, path)
		}
	}
	return in, nil
}

func (s *Schema) checkUnknown(raw any) error {
	var unknown []string
	for _, k := range rawKeys(raw) {
		if _, ok := s.keymap[k]; !ok {
			unknown = append(unknown, keyString(k))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return newError(&Error{
		Code:   CodeUnknownKey,
		Record: s.name,
		Path:   pointerField(unknown[0]),
	}, map[string]string{"key": unknown[0]})
}

// coerce converts a raw value toward d. Coercion is lenient: shape mismatches
// are left for the Validator, which reports them with the full descriptor.
func coerce(d Descriptor, raw any) (any, error) {
	switch t := d.(type) {
	case Optional:
		if isNull(raw) {
			return nil, nil
		}
		return coerce(t.Inner, raw)
	case Array:
		if !isSequence(raw) {
			v, err := coerce(t.Elem, raw)
			if err != nil {
				return raw, nil
			}
			return v, nil
		}
		out := []any{}
		var err error
		eachElem(raw, func(i int, e any) bool {
			var v any
			if v, err = coerce(t.Elem, e); err != nil {
				err = rebase(err, pointerIndex(i))
				return false
			}
			out = append(out, v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	case Concrete:
		rs, ok := t.Kind.(*Schema)
		if !ok || isNull(raw) || rs.Is(raw) {
			return raw, nil
		}
		if _, _, isMap := rawLookup(raw, nil); !isMap {
			return raw, nil
		}
		return rs.Construct(raw)
	}
	return raw, nil
}
