package schemafile

import (
	"errors"
	"fmt"
	"sort"

	serdes "github.com/riseshia/serdes"
)

var (
	// ErrUnknownRecord indicates a lookup for a record that was not declared.
	ErrUnknownRecord = errors.New("schemafile: unknown record")
	// ErrDuplicateRecord indicates two records share a name.
	ErrDuplicateRecord = errors.New("schemafile: duplicate record")
)

// Catalog holds the compiled schemas of one declaration file. It is immutable
// and safe for concurrent use.
type Catalog struct {
	root    string
	order   []string
	records map[string]*serdes.Schema
}

// Option configures compilation.
type Option func(*compiler)

// WithKind makes a custom kind available to shape expressions under its name.
func WithKind(k serdes.Kind) Option {
	return func(c *compiler) { c.kinds[k.Name()] = k }
}

type compiler struct {
	kinds map[string]serdes.Kind
}

var predicates = map[string]func(any) bool{
	"nil":   serdes.IsNil,
	"empty": serdes.IsEmpty,
	"zero":  serdes.IsZero,
}

// Compile builds every record of f in order. The root defaults to the last
// declared record.
func Compile(f *File, opts ...Option) (*Catalog, error) {
	c := &compiler{kinds: map[string]serdes.Kind{
		"String":  serdes.String,
		"Integer": serdes.Integer,
		"Float":   serdes.Float,
		"Boolean": serdes.Boolean,
	}}
	for _, opt := range opts {
		opt(c)
	}

	cat := &Catalog{records: make(map[string]*serdes.Schema, len(f.Records))}
	resolve := func(name string) (serdes.Shape, bool) {
		if s, ok := cat.records[name]; ok {
			return s, true
		}
		k, ok := c.kinds[name]
		return k, ok
	}
	for _, rd := range f.Records {
		if _, dup := cat.records[rd.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, rd.Name)
		}
		s, err := compileRecord(rd, resolve)
		if err != nil {
			return nil, err
		}
		cat.records[rd.Name] = s
		cat.order = append(cat.order, rd.Name)
	}

	cat.root = f.Root
	if cat.root == "" && len(cat.order) > 0 {
		cat.root = cat.order[len(cat.order)-1]
	}
	if _, ok := cat.records[cat.root]; !ok {
		return nil, fmt.Errorf("%w: root %s", ErrUnknownRecord, cat.root)
	}
	return cat, nil
}

func compileRecord(rd RecordDecl, resolve func(string) (serdes.Shape, bool)) (*serdes.Schema, error) {
	b := serdes.Declare(rd.Name)
	if rd.Naming != "" {
		b.RenameAllNamed(rd.Naming)
	}
	if rd.Symbolize {
		b.Symbolize(true)
	}
	if rd.Strict {
		b.Strict()
	}
	for _, fd := range rd.Fields {
		shape, err := ParseShape(fd.Type, resolve)
		if err != nil {
			return nil, fmt.Errorf("record %s field %s: %w", rd.Name, fd.Name, err)
		}
		var opts []serdes.FieldOption
		if len(fd.Only) > 0 {
			opts = append(opts, serdes.OneOf(fd.Only...))
		}
		if fd.SkipSerializing {
			opts = append(opts, serdes.SkipSerializing())
		}
		if fd.SkipSerializingIfNil {
			opts = append(opts, serdes.SkipSerializingIfNil())
		}
		if fd.SkipSerializingIf != "" {
			pred, ok := predicates[fd.SkipSerializingIf]
			if !ok {
				return nil, fmt.Errorf("record %s field %s: unknown predicate %q", rd.Name, fd.Name, fd.SkipSerializingIf)
			}
			opts = append(opts, serdes.SkipSerializingIf(pred))
		}
		b.Field(fd.Name, shape, opts...)
	}
	return b.Build()
}

// Root returns the entry-point record.
func (c *Catalog) Root() *serdes.Schema { return c.records[c.root] }

// Lookup returns the named record.
func (c *Catalog) Lookup(name string) (*serdes.Schema, error) {
	s, ok := c.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecord, name)
	}
	return s, nil
}

// Names returns record names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Sorted returns record names in lexicographic order.
func (c *Catalog) Sorted() []string {
	names := c.Names()
	sort.Strings(names)
	return names
}
