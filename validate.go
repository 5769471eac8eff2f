package serdes

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// validate enforces the attribute's descriptor and allowed values on v.
// It runs on every assignment, construction-driven or direct.
func validate(attr *AttributeDefinition, v any) error {
	if !attr.desc.Permit(v) {
		return newError(&Error{
			Code:     CodeInvalidType,
			Record:   attr.record,
			Field:    attr.name,
			Expected: attr.desc.String(),
			Actual:   humanize(v),
			Value:    v,
		}, nil)
	}
	allowed := attr.opts.AllowedValues
	if allowed == nil {
		return nil
	}
	bad, found := firstDisallowed(v, allowed)
	if !found {
		return nil
	}
	return newError(&Error{
		Code:     CodeInvalidValue,
		Record:   attr.record,
		Field:    attr.name,
		Expected: attr.desc.String(),
		Actual:   humanize(bad),
		Value:    bad,
		Allowed:  append([]any(nil), allowed...),
	}, nil)
}

// firstDisallowed returns the first literal of v (v itself, or each element
// for sequences) that is not a member of allowed. Nulls are never checked.
func firstDisallowed(v any, allowed []any) (any, bool) {
	var (
		bad   any
		found bool
	)
	if eachElem(v, func(_ int, e any) bool {
		if !isNull(e) && !member(e, allowed) {
			bad, found = e, true
			return false
		}
		return true
	}) {
		return bad, found
	}
	if isNull(v) || member(v, allowed) {
		return nil, false
	}
	return v, true
}

func member(v any, set []any) bool {
	nv := normalizeNumber(v)
	for _, a := range set {
		if reflect.DeepEqual(nv, normalizeNumber(a)) {
			return true
		}
	}
	return false
}

// normalizeNumber maps integer types to int64 and floats to float64 so that
// allowed-value membership does not depend on the decoder's integer width.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return uint64ToAny(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return uint64ToAny(n)
	case float32:
		return float64(n)
	}
	return v
}

func uint64ToAny(n uint64) any {
	if n <= 1<<63-1 {
		return int64(n)
	}
	return n
}

// humanize renders the runtime shape of v for error messages. Sequences are
// rendered element by element, booleans as "boolean" and null as "nil".
func humanize(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case string:
		return "String"
	case Symbol:
		return "Symbol"
	case *Instance:
		if t == nil {
			return "nil"
		}
		return t.schema.name
	case *Map:
		return "Map"
	}
	switch {
	case isInteger(v):
		return "Integer"
	case isFloat(v):
		return "Float"
	case isSequence(v):
		parts := []string{}
		eachElem(v, func(_ int, e any) bool {
			parts = append(parts, humanize(e))
			return true
		})
		return "array(" + strings.Join(parts, ", ") + ")"
	case reflect.TypeOf(v).Kind() == reflect.Map:
		return "Map"
	}
	return fmt.Sprintf("%T", v)
}

// inspectLiteral renders a value inside quotes in messages: strings appear
// raw, everything else as inspect would render it.
func inspectLiteral(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return inspect(v)
}

// inspect renders a literal: strings quoted, sequences as [a, b], maps as
// {"k" => v} with sorted keys, null as nil.
func inspect(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case Symbol:
		return ":" + string(t)
	case bool:
		return strconv.FormatBool(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case *Instance:
		if t == nil {
			return "nil"
		}
		return "#<" + t.schema.name + ">"
	case *Map:
		return inspect(t.Plain())
	}
	if isInteger(v) {
		return fmt.Sprint(v)
	}
	if isSequence(v) {
		parts := []string{}
		eachElem(v, func(_ int, e any) bool {
			parts = append(parts, inspect(e))
			return true
		})
		return "[" + strings.Join(parts, ", ") + "]"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		parts := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			parts = append(parts, inspect(iter.Key().Interface())+" => "+inspect(iter.Value().Interface()))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}
