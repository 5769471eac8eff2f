package serdes

// Schema is the registry of a declared record type: its ordered fields, their
// descriptors and options, the naming configuration and the reverse keymap.
// A Schema is immutable after Build and safe for concurrent use.
//
// A Schema is also a Kind, so record types nest: Field("db", dbSchema).
type Schema struct {
	name   string
	naming NameTransformer
	strict bool
	fields []*AttributeDefinition
	byName map[string]*AttributeDefinition
	keymap map[any]*AttributeDefinition
}

// Name implements Kind and returns the record type's name.
func (s *Schema) Name() string { return s.name }

// Is implements Kind: v must be a non-nil instance of this record type.
func (s *Schema) Is(v any) bool {
	in, ok := v.(*Instance)
	return ok && in != nil && in.schema == s
}

// Descriptor implements Shape.
func (s *Schema) Descriptor() Descriptor { return Concrete{Kind: s} }

// Naming returns the record's key naming configuration.
func (s *Schema) Naming() NameTransformer { return s.naming }

// Strict reports whether unknown input keys are rejected.
func (s *Schema) Strict() bool { return s.strict }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []*AttributeDefinition {
	return append([]*AttributeDefinition(nil), s.fields...)
}

// Field looks up a field by identifier.
func (s *Schema) Field(identifier string) (*AttributeDefinition, bool) {
	a, ok := s.byName[identifier]
	return a, ok
}

// FieldByKey looks up a field by external key (string or Symbol, matching the
// record's symbolization).
func (s *Schema) FieldByKey(key any) (*AttributeDefinition, bool) {
	a, ok := s.keymap[key]
	return a, ok
}

// New returns an empty instance; every field is unset (nil) until assigned.
func (s *Schema) New() *Instance {
	return &Instance{schema: s, values: make([]any, len(s.fields))}
}
