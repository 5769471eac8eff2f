package serdes

import "github.com/riseshia/serdes/naming"

// NameTransformer maps field identifiers to external map keys. Casing and
// symbolization are independent: Symbolized only changes the key's type.
type NameTransformer struct {
	Strategy   naming.Strategy
	Symbolized bool
}

// ExternalKey returns the external key for identifier: a string, or a Symbol
// when Symbolized is set.
func (t NameTransformer) ExternalKey(identifier string) any {
	k := t.Strategy.Apply(identifier)
	if t.Symbolized {
		return Symbol(k)
	}
	return k
}

// AttributeOptions are the per-field options of a declaration.
type AttributeOptions struct {
	// AllowedValues restricts accepted literals; checked after the shape.
	// For sequence-shaped fields every non-null element must be a member.
	AllowedValues []any
	// SkipSerializing always omits the field from Project output.
	SkipSerializing bool
	// SkipSerializingIf omits the field when it returns true for the value.
	SkipSerializingIf func(v any) bool
	// SkipSerializingIfNil omits the field when its value is null.
	SkipSerializingIfNil bool
}

// FieldOption configures AttributeOptions at declaration time.
type FieldOption func(*AttributeOptions)

// OneOf restricts the field to the given literal values.
func OneOf(values ...any) FieldOption {
	return func(o *AttributeOptions) { o.AllowedValues = append([]any{}, values...) }
}

// SkipSerializing omits the field from Project output.
func SkipSerializing() FieldOption {
	return func(o *AttributeOptions) { o.SkipSerializing = true }
}

// SkipSerializingIf omits the field from Project output when pred(value) is true.
func SkipSerializingIf(pred func(v any) bool) FieldOption {
	return func(o *AttributeOptions) { o.SkipSerializingIf = pred }
}

// SkipSerializingIfNil omits the field from Project output when it is null.
func SkipSerializingIfNil() FieldOption {
	return func(o *AttributeOptions) { o.SkipSerializingIfNil = true }
}

// WithOptions replaces all options at once.
func WithOptions(opts AttributeOptions) FieldOption {
	return func(o *AttributeOptions) {
		*o = opts
		if opts.AllowedValues != nil {
			o.AllowedValues = append([]any{}, opts.AllowedValues...)
		}
	}
}

// AttributeDefinition is one declared field of a record type. It is immutable
// once the record is built.
type AttributeDefinition struct {
	record string
	name   string
	desc   Descriptor
	opts   AttributeOptions
	key    any
	index  int
}

// Record returns the owning record type's name.
func (a *AttributeDefinition) Record() string { return a.record }

// Name returns the internal field identifier.
func (a *AttributeDefinition) Name() string { return a.name }

// Descriptor returns the field's type descriptor.
func (a *AttributeDefinition) Descriptor() Descriptor { return a.desc }

// Key returns the external key: a string or a Symbol.
func (a *AttributeDefinition) Key() any { return a.key }

// Optional reports whether the field may be absent from input.
func (a *AttributeDefinition) Optional() bool {
	_, ok := a.desc.(Optional)
	return ok
}

// Options returns a copy of the field's options.
func (a *AttributeDefinition) Options() AttributeOptions {
	o := a.opts
	if o.AllowedValues != nil {
		o.AllowedValues = append([]any{}, o.AllowedValues...)
	}
	return o
}

// skip reports whether Project omits the field for value v. The three
// options are independent: any one of them omits the field.
func (a *AttributeDefinition) skip(v any) bool {
	switch {
	case a.opts.SkipSerializing:
		return true
	case a.opts.SkipSerializingIf != nil && a.opts.SkipSerializingIf(v):
		return true
	case a.opts.SkipSerializingIfNil && isNull(v):
		return true
	}
	return false
}
