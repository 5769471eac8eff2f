package serdes

import "fmt"

// Shape is anything a field can be declared with: a Kind or a Descriptor.
// A bare Kind stands for Concrete(kind).
type Shape interface {
	Descriptor() Descriptor
}

// Kind is an exact leaf shape. Values satisfy a Kind only when their runtime
// shape matches it exactly; there is no widening between kinds.
//
// The kinds are the Primitive constants, declared record types (*Schema) and
// host-defined kinds created with NewKind.
type Kind interface {
	Shape
	// Name is the display name used in descriptors and error messages.
	Name() string
	// Is reports whether v has exactly this shape.
	Is(v any) bool
}

// Primitive enumerates the built-in leaf kinds.
type Primitive uint8

const (
	String  Primitive = iota + 1 // Go string
	Integer                      // any Go integer type
	Float                        // float32, float64
	Boolean                      // bool
)

var (
	_ Kind = String
	_ Kind = (*Schema)(nil)
)

// Name implements Kind.
func (p Primitive) Name() string {
	switch p {
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

func (p Primitive) String() string { return p.Name() }

// Is implements Kind.
func (p Primitive) Is(v any) bool {
	switch p {
	case String:
		_, ok := v.(string)
		return ok
	case Integer:
		return isInteger(v)
	case Float:
		return isFloat(v)
	case Boolean:
		_, ok := v.(bool)
		return ok
	}
	return false
}

// Descriptor implements Shape.
func (p Primitive) Descriptor() Descriptor { return Concrete{Kind: p} }

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// NewKind declares a host-defined leaf kind. is must report whether a value
// has the kind's exact shape. Values of custom kinds are validated like any
// other leaf. Project emits them only when they are strings, numbers or
// booleans and fails with ErrSerialize otherwise.
func NewKind(name string, is func(v any) bool) Kind {
	if is == nil {
		panic("serdes.NewKind: is must not be nil")
	}
	return &customKind{name: name, is: is}
}

type customKind struct {
	name string
	is   func(any) bool
}

func (k *customKind) Name() string           { return k.name }
func (k *customKind) Is(v any) bool          { return v != nil && k.is(v) }
func (k *customKind) Descriptor() Descriptor { return Concrete{Kind: k} }
