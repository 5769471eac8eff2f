package serdes

import (
	"fmt"

	"github.com/riseshia/serdes/naming"
)

// Builder declares a record type. Naming and symbolization must be declared
// (at most once each) before the first field. The first declaration error is
// kept and returned by Build; later calls are ignored once an error occurred.
type Builder struct {
	name       string
	naming     NameTransformer
	renamed    bool
	symbolized bool
	strict     bool
	fields     []*AttributeDefinition
	byName     map[string]*AttributeDefinition
	byKey      map[any]string
	err        error
}

// Declare starts the declaration of a record type named name.
func Declare(name string) *Builder {
	return &Builder{
		name:   name,
		naming: NameTransformer{Strategy: naming.SnakeCase},
		byName: map[string]*AttributeDefinition{},
		byKey:  map[any]string{},
	}
}

// RenameAll sets the casing of every external key.
func (b *Builder) RenameAll(s naming.Strategy) *Builder {
	if !b.configurable("naming") {
		return b
	}
	if b.renamed {
		b.err = declarationError(b.name, "naming is already declared", nil)
		return b
	}
	if s != naming.SnakeCase && s != naming.PascalCase {
		b.err = declarationError(b.name, fmt.Sprintf("rename strategy '%s' not found", s), naming.ErrUnknownStrategy)
		return b
	}
	b.renamed = true
	b.naming.Strategy = s
	return b
}

// RenameAllNamed is RenameAll with a strategy name such as "PascalCase".
func (b *Builder) RenameAllNamed(strategy string) *Builder {
	if b.err != nil {
		return b
	}
	s, err := naming.Parse(strategy)
	if err != nil {
		b.err = declarationError(b.name, fmt.Sprintf("rename strategy '%s' not found", strategy), err)
		return b
	}
	return b.RenameAll(s)
}

// Symbolize selects atom-like (Symbol) external keys instead of strings.
func (b *Builder) Symbolize(on bool) *Builder {
	if !b.configurable("symbolization") {
		return b
	}
	if b.symbolized {
		b.err = declarationError(b.name, "symbolization is already declared", nil)
		return b
	}
	b.symbolized = true
	b.naming.Symbolized = on
	return b
}

// Strict makes Construct reject input keys that match no declared field.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

func (b *Builder) configurable(what string) bool {
	if b.err != nil {
		return false
	}
	if len(b.fields) > 0 {
		b.err = declarationError(b.name, "declare "+what+" before defining attributes", nil)
		return false
	}
	return true
}

// Field declares a field. shape is a Kind (wrapped in Concrete) or a
// Descriptor.
func (b *Builder) Field(identifier string, shape Shape, opts ...FieldOption) *Builder {
	if b.err != nil {
		return b
	}
	if identifier == "" {
		b.err = declarationError(b.name, "attribute name must not be empty", nil)
		return b
	}
	if shape == nil {
		b.err = declarationError(b.name, "attribute "+identifier+" has no type", nil)
		return b
	}
	desc := shape.Descriptor()
	if !wellFormed(desc) {
		b.err = declarationError(b.name, "attribute "+identifier+" has an incomplete type", nil)
		return b
	}
	if _, dup := b.byName[identifier]; dup {
		b.err = newError(&Error{Code: CodeDuplicateField, Record: b.name, Field: identifier}, nil)
		return b
	}
	key := b.naming.ExternalKey(identifier)
	if other, clash := b.byKey[key]; clash {
		b.err = newError(&Error{
			Code:   CodeDuplicateKey,
			Record: b.name,
			Field:  identifier,
			Cause:  fmt.Errorf("external key %s is already used by %s", keyString(key), other),
		}, map[string]string{"key": keyString(key), "other": other})
		return b
	}
	attr := &AttributeDefinition{
		record: b.name,
		name:   identifier,
		desc:   desc,
		key:    key,
		index:  len(b.fields),
	}
	for _, o := range opts {
		if o != nil {
			o(&attr.opts)
		}
	}
	b.fields = append(b.fields, attr)
	b.byName[identifier] = attr
	b.byKey[key] = identifier
	return b
}

// Build finalizes the declaration into an immutable Schema.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &Schema{
		name:   b.name,
		naming: b.naming,
		strict: b.strict,
		fields: make([]*AttributeDefinition, len(b.fields)),
		byName: make(map[string]*AttributeDefinition, len(b.fields)),
		keymap: make(map[any]*AttributeDefinition, len(b.fields)),
	}
	for i, f := range b.fields {
		cp := *f
		cp.opts = f.Options()
		s.fields[i] = &cp
		s.byName[cp.name] = &cp
		s.keymap[cp.key] = &cp
	}
	return s, nil
}

// MustBuild is like Build but panics on a declaration error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// wellFormed reports whether every wrapper in d has its inner shape set.
func wellFormed(d Descriptor) bool {
	switch t := d.(type) {
	case Optional:
		return t.Inner != nil && wellFormed(t.Inner)
	case Array:
		return t.Elem != nil && wellFormed(t.Elem)
	case Concrete:
		if s, ok := t.Kind.(*Schema); ok {
			return s != nil
		}
		return t.Kind != nil
	}
	return false
}
