package serdes

import "reflect"

// Predicates for SkipSerializingIf.

// IsNil reports whether v is null.
func IsNil(v any) bool { return isNull(v) }

// IsEmpty reports whether v is null, an empty string, an empty sequence or an
// empty map.
func IsEmpty(v any) bool {
	if isNull(v) {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case *Map:
		return t.Len() == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// IsZero reports whether v is null or the zero value of its type
// (0, false, "").
func IsZero(v any) bool {
	if isNull(v) {
		return true
	}
	if IsEmpty(v) {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
