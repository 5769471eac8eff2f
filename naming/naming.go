// Package naming maps internal field identifiers (snake_case tokens) to the
// casing used for external map keys.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Strategy is a casing convention for external keys.
type Strategy int

const (
	SnakeCase  Strategy = iota // user_name
	PascalCase                 // UserName
)

// ErrUnknownStrategy is returned by Parse for unregistered strategy names.
var ErrUnknownStrategy = errors.New("naming: unknown strategy")

// Parse resolves a strategy by name. Accepted names are "snake_case",
// "PascalCase" and "pascal_case".
func Parse(name string) (Strategy, error) {
	switch name {
	case "snake_case":
		return SnakeCase, nil
	case "PascalCase", "pascal_case":
		return PascalCase, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string {
	switch s {
	case SnakeCase:
		return "snake_case"
	case PascalCase:
		return "PascalCase"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Apply converts a snake_case identifier into this strategy's casing.
func (s Strategy) Apply(identifier string) string {
	return Transform(SnakeCase, s, identifier)
}

// Transform converts name from one casing to another. It is total but not
// guaranteed to be lossless for identifiers that mix conventions.
func Transform(from, to Strategy, name string) string {
	if from == to {
		return name
	}
	switch to {
	case PascalCase:
		return ToPascal(name)
	case SnakeCase:
		return ToSnake(name)
	}
	return name
}

// ToPascal joins underscore-separated words, capitalizing the first rune of each
// word and lowercasing the rest: "user_name" -> "UserName".
func ToPascal(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, w := range strings.Split(name, "_") {
		if w == "" {
			continue
		}
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}

// ToSnake splits name into words at case boundaries and separators and joins
// them lowercased with underscores: "UserName" -> "user_name",
// "XMLParser" -> "xml_parser".
func ToSnake(name string) string {
	return strings.ToLower(strings.Join(words(name), "_"))
}

// words tokenizes CamelCase, PascalCase and separator-delimited identifiers.
func words(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	var cur strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			continue
		}
		if cur.Len() > 0 && boundary(runes, i) {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// boundary reports whether a new word starts at runes[i].
func boundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	switch {
	case unicode.IsUpper(r) && unicode.IsLower(prev):
		return true // userName
	case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		return true // XMLParser
	case unicode.IsDigit(r) != unicode.IsDigit(prev) && unicode.IsUpper(r):
		return true // v2Name
	}
	return false
}
