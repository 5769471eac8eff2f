// Package schemafile declares records in YAML and compiles them into a
// Catalog of schemas.
//
//	root: Database
//	records:
//	  - name: Table
//	    fields:
//	      - {name: name, type: String}
//	      - {name: comment, type: optional(String)}
//	  - name: Database
//	    naming: PascalCase
//	    fields:
//	      - {name: adapter, type: String, only: [mysql, postgresql]}
//	      - {name: tables, type: array(Table), skip_serializing_if: empty}
//
// Records may only reference records declared before them.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a decoded declaration file.
type File struct {
	Root    string       `yaml:"root"`
	Records []RecordDecl `yaml:"records"`
}

// RecordDecl declares one record.
type RecordDecl struct {
	Name      string      `yaml:"name"`
	Naming    string      `yaml:"naming"`
	Symbolize bool        `yaml:"symbolize"`
	Strict    bool        `yaml:"strict"`
	Fields    []FieldDecl `yaml:"fields"`
}

// FieldDecl declares one attribute. Type is a shape expression such as
// "array(optional(String))".
type FieldDecl struct {
	Name                 string `yaml:"name"`
	Type                 string `yaml:"type"`
	Only                 []any  `yaml:"only"`
	SkipSerializing      bool   `yaml:"skip_serializing"`
	SkipSerializingIf    string `yaml:"skip_serializing_if"`
	SkipSerializingIfNil bool   `yaml:"skip_serializing_if_nil"`
}

// Parse decodes a declaration file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schemafile: empty declaration file")
		}
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if len(f.Records) == 0 {
		return nil, errors.New("schemafile: no records declared")
	}
	return &f, nil
}

// Load reads and compiles the declaration file at path.
func Load(path string, opts ...Option) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	f, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := Compile(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
