package serdes

import (
	"errors"
	"strings"

	"github.com/riseshia/serdes/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeInvalidValue   = "invalid_value"
	CodeInvalidInput   = "invalid_input"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeUnknownField   = "unknown_field"
	CodeDuplicateField = "duplicate_field"
	CodeDuplicateKey   = "duplicate_key"
	CodeDeclaration    = "declaration"
	CodeSerialize      = "serialize"
)

// Sentinel errors matched by errors.Is against an *Error.
var (
	// ErrDeclaration: naming or symbolization declared late or twice, or an
	// unknown naming strategy.
	ErrDeclaration = errors.New("serdes: declaration error")
	// ErrDuplicateField: a field identifier declared twice for one record, or
	// two fields mapping to the same external key.
	ErrDuplicateField = errors.New("serdes: duplicate field")
	// ErrType: a value failed its descriptor or its allowed values, or a
	// record was constructed from something that is not a map.
	ErrType = errors.New("serdes: type error")
	// ErrRequired: a non-optional field is absent from the input map.
	ErrRequired = errors.New("serdes: missing required value")
	// ErrUnknownKey: a strict record received a key matching no field.
	ErrUnknownKey = errors.New("serdes: unknown key")
	// ErrUnknownField: an accessor named a field the record does not declare.
	ErrUnknownField = errors.New("serdes: unknown field")
	// ErrSerialize: a field value cannot be projected into a map.
	ErrSerialize = errors.New("serdes: serialization error")
)

// Error is the single error type raised by declaration, construction,
// assignment and projection. Only the fields relevant to Code are set.
type Error struct {
	Code   string
	Record string
	Field  string
	// Path is the JSON Pointer of the offending value relative to the map
	// passed to Construct (for example /tables/1/name). Empty outside
	// construction.
	Path     string
	Expected string // descriptor display name
	Actual   string // humanized shape of Value
	Value    any
	Allowed  []any
	Message  string
	Cause    error
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches the sentinel for e.Code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDeclaration:
		return e.Code == CodeDeclaration
	case ErrDuplicateField:
		return e.Code == CodeDuplicateField || e.Code == CodeDuplicateKey
	case ErrType:
		return e.Code == CodeInvalidType || e.Code == CodeInvalidValue || e.Code == CodeInvalidInput
	case ErrRequired:
		return e.Code == CodeRequired
	case ErrUnknownKey:
		return e.Code == CodeUnknownKey
	case ErrUnknownField:
		return e.Code == CodeUnknownField
	case ErrSerialize:
		return e.Code == CodeSerialize
	}
	return false
}

// AsError extracts an *Error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// newError fills Message from the current i18n translator.
func newError(e *Error, extra map[string]string) *Error {
	data := map[string]string{
		"record":   e.Record,
		"field":    e.Field,
		"expected": e.Expected,
		"actual":   e.Actual,
		"value":    inspectLiteral(e.Value),
	}
	if e.Allowed != nil {
		data["allowed"] = inspect(e.Allowed)
	}
	for k, v := range extra {
		data[k] = v
	}
	e.Message = i18n.T(e.Code, data)
	return e
}

// rebase prefixes the error path with base, returning a copy.
func rebase(err error, base string) error {
	e, ok := AsError(err)
	if !ok {
		return err
	}
	cp := *e
	switch {
	case cp.Path == "" || cp.Path == "/":
		cp.Path = base
	case strings.HasPrefix(cp.Path, "/"):
		cp.Path = base + cp.Path
	default:
		cp.Path = base + "/" + cp.Path
	}
	return &cp
}

func declarationError(record, reason string, cause error) *Error {
	return newError(&Error{Code: CodeDeclaration, Record: record, Cause: cause}, map[string]string{"reason": reason})
}
