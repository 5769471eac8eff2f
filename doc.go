// Package serdes declares record types whose fields have explicit shapes and
// converts between records and generic maps, validating every value.
//
// Overview
//   - Shapes: the primitive kinds String, Integer, Float and Boolean, declared
//     record types, and the descriptors Concrete, Optional and Array, nested
//     freely. A bare Kind stands for Concrete(kind).
//   - Declaration: Declare(name) returns a Builder; RenameAll/Symbolize set the
//     key naming (before any field), Field declares fields with options, Build
//     returns an immutable *Schema.
//   - Runtime: Schema.Construct(raw) coerces and validates a raw map into an
//     *Instance; Instance.Set validates every later write; Schema.Project
//     converts an instance back into an ordered *Map.
//   - Errors: every failure is an *Error with a Code; match kinds with
//     errors.Is against ErrType, ErrRequired, ErrDeclaration, and so on.
//
// Typical usage:
//
//	table := serdes.Declare("Table").
//		Field("name", serdes.String).
//		Field("comment", serdes.OptionalOf(serdes.String), serdes.SkipSerializingIfNil()).
//		MustBuild()
//
//	in, err := table.Construct(map[string]any{"name": "users"})
//	m, err := in.Project()
//
// Sub-packages: naming (key casing), source (JSON/YAML to raw maps), codec
// (bytes to instances), jsonschema (JSON Schema export), schemafile (records
// declared in YAML) and cmd/serdes (CLI).
package serdes
