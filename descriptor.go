package serdes

import "reflect"

// Descriptor is a value describing an accepted shape. The set of descriptors is
// closed: Concrete, Optional and Array, nested without depth limit.
type Descriptor interface {
	Shape
	// Permit is the structural predicate: it reports whether v has this shape.
	Permit(v any) bool
	// String renders the nested display name, e.g. "optional(array(String))".
	String() string

	isDescriptor()
}

// Concrete accepts exactly one Kind.
type Concrete struct {
	Kind Kind
}

// Optional accepts null or whatever Inner accepts.
type Optional struct {
	Inner Descriptor
}

// Array accepts a sequence whose elements all satisfy Elem. The empty sequence
// always satisfies an Array.
type Array struct {
	Elem Descriptor
}

// ConcreteOf returns Concrete(k).
func ConcreteOf(k Kind) Concrete { return Concrete{Kind: k} }

// OptionalOf returns optional(s). A bare Kind is wrapped in Concrete.
func OptionalOf(s Shape) Optional { return Optional{Inner: describe(s)} }

// ArrayOf returns array(s). A bare Kind is wrapped in Concrete.
func ArrayOf(s Shape) Array { return Array{Elem: describe(s)} }

func describe(s Shape) Descriptor {
	if s == nil {
		panic("serdes: shape must not be nil")
	}
	return s.Descriptor()
}

func (c Concrete) Permit(v any) bool      { return c.Kind.Is(v) }
func (c Concrete) String() string         { return c.Kind.Name() }
func (c Concrete) Descriptor() Descriptor { return c }
func (Concrete) isDescriptor()            {}

func (o Optional) Permit(v any) bool {
	if isNull(v) {
		return true
	}
	return o.Inner.Permit(v)
}
func (o Optional) String() string         { return "optional(" + o.Inner.String() + ")" }
func (o Optional) Descriptor() Descriptor { return o }
func (Optional) isDescriptor()            {}

func (a Array) Permit(v any) bool {
	ok := true
	if !eachElem(v, func(_ int, e any) bool {
		ok = a.Elem.Permit(e)
		return ok
	}) {
		return false
	}
	return ok
}
func (a Array) String() string         { return "array(" + a.Elem.String() + ")" }
func (a Array) Descriptor() Descriptor { return a }
func (Array) isDescriptor()            {}

// isNull reports whether v is absent: the nil interface or a nil *Instance.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	in, ok := v.(*Instance)
	return ok && in == nil
}

// isSequence reports whether v is a Go slice.
func isSequence(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]any); ok {
		return true
	}
	return reflect.TypeOf(v).Kind() == reflect.Slice
}

// eachElem calls fn for every element of the slice v, stopping early when fn
// returns false. It reports false when v is not a slice.
func eachElem(v any, fn func(i int, e any) bool) bool {
	if s, ok := v.([]any); ok {
		for i, e := range s {
			if !fn(i, e) {
				break
			}
		}
		return true
	}
	if !isSequence(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		if !fn(i, rv.Index(i).Interface()) {
			break
		}
	}
	return true
}
