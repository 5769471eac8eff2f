package serdes

// Instance holds one value per declared field of its record type. All writes
// go through the Validator. Instances carry no internal locking.
type Instance struct {
	schema *Schema
	values []any
}

// Schema returns the instance's record type.
func (in *Instance) Schema() *Schema { return in.schema }

// Set validates v against the field's descriptor and allowed values and stores
// it. The instance is unchanged when Set fails.
func (in *Instance) Set(identifier string, v any) error {
	attr, ok := in.schema.byName[identifier]
	if !ok {
		return in.unknown(identifier)
	}
	return in.assign(attr, v)
}

// MustSet is like Set but panics on error.
func (in *Instance) MustSet(identifier string, v any) *Instance {
	if err := in.Set(identifier, v); err != nil {
		panic(err)
	}
	return in
}

func (in *Instance) assign(attr *AttributeDefinition, v any) error {
	if err := validate(attr, v); err != nil {
		return err
	}
	in.values[attr.index] = v
	return nil
}

// Get returns the field's value, or nil for unset or unknown fields.
func (in *Instance) Get(identifier string) any {
	v, _ := in.Lookup(identifier)
	return v
}

// Lookup returns the field's value and whether the field is declared.
func (in *Instance) Lookup(identifier string) (any, bool) {
	attr, ok := in.schema.byName[identifier]
	if !ok {
		return nil, false
	}
	return in.values[attr.index], true
}

// Project converts the instance into a raw map. See Schema.Project.
func (in *Instance) Project() (*Map, error) { return in.schema.Project(in) }

// MarshalJSON encodes the projected instance.
func (in *Instance) MarshalJSON() ([]byte, error) {
	m, err := in.Project()
	if err != nil {
		return nil, err
	}
	return m.MarshalJSON()
}

func (in *Instance) unknown(identifier string) error {
	return newError(&Error{Code: CodeUnknownField, Record: in.schema.name, Field: identifier}, nil)
}

// Value returns the field's value as T. ok is false when the field is unknown,
// unset, or holds a value of another type.
func Value[T any](in *Instance, identifier string) (T, bool) {
	v, _ := in.Lookup(identifier)
	t, ok := v.(T)
	return t, ok
}
