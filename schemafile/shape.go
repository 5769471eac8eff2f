package schemafile

import (
	"errors"
	"fmt"
	"strings"

	serdes "github.com/riseshia/serdes"
)

// ErrShape reports a malformed shape expression.
var ErrShape = errors.New("schemafile: invalid shape expression")

// ParseShape parses expr := name | optional(expr) | array(expr). Names resolve
// through resolve.
func ParseShape(expr string, resolve func(name string) (serdes.Shape, bool)) (serdes.Shape, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrShape)
	}
	for _, w := range []string{"optional", "array"} {
		rest, ok := strings.CutPrefix(s, w)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, "(") {
			break
		}
		if !strings.HasSuffix(rest, ")") {
			return nil, fmt.Errorf("%w: unbalanced parentheses in %q", ErrShape, expr)
		}
		inner, err := ParseShape(rest[1:len(rest)-1], resolve)
		if err != nil {
			return nil, err
		}
		if w == "optional" {
			return serdes.OptionalOf(inner), nil
		}
		return serdes.ArrayOf(inner), nil
	}
	if strings.ContainsAny(s, "() \t,") {
		return nil, fmt.Errorf("%w: %q", ErrShape, expr)
	}
	sh, ok := resolve(s)
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrShape, s)
	}
	return sh, nil
}
