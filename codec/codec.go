// Package codec binds a record schema to a document encoding.
//
// A Codec decodes bytes into a validated *serdes.Instance and encodes an
// instance back into bytes, keeping the schema's key order.
package codec

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	serdes "github.com/riseshia/serdes"
	"github.com/riseshia/serdes/source"
)

// Codec converts between encoded documents and instances of one record.
type Codec interface {
	Schema() *serdes.Schema
	ContentType() string
	Decode(ctx context.Context, data []byte) (*serdes.Instance, error)
	Encode(ctx context.Context, in *serdes.Instance) ([]byte, error)
}

// Option configures a codec.
type Option func(*options)

type options struct {
	indent     string
	rejectDups bool
}

// WithIndent pretty-prints JSON output using the given indent. YAML output is
// always block style.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// RejectDuplicateKeys makes JSON decoding fail with a
// *source.DuplicateKeyError when an object repeats a key. YAML input always
// rejects duplicates.
func RejectDuplicateKeys() Option {
	return func(o *options) { o.rejectDups = true }
}

// JSON returns a codec for application/json documents.
func JSON(s *serdes.Schema, opts ...Option) Codec {
	return &docCodec{schema: s, format: source.JSON, opts: build(opts)}
}

// YAML returns a codec for application/yaml documents.
func YAML(s *serdes.Schema, opts ...Option) Codec {
	return &docCodec{schema: s, format: source.YAML, opts: build(opts)}
}

// For returns the codec matching f.
func For(f source.Format, s *serdes.Schema, opts ...Option) Codec {
	if f == source.YAML {
		return YAML(s, opts...)
	}
	return JSON(s, opts...)
}

func build(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type docCodec struct {
	schema *serdes.Schema
	format source.Format
	opts   options
}

func (c *docCodec) Schema() *serdes.Schema { return c.schema }

func (c *docCodec) ContentType() string {
	if c.format == source.YAML {
		return "application/yaml"
	}
	return "application/json"
}

func (c *docCodec) Decode(ctx context.Context, data []byte) (*serdes.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.format == source.JSON && c.opts.rejectDups {
		if err := source.CheckDuplicateKeys(data); err != nil {
			return nil, err
		}
	}
	raw, err := source.Decode(data, c.format)
	if err != nil {
		return nil, err
	}
	return c.schema.Construct(source.KeysFor(c.schema, raw))
}

func (c *docCodec) Encode(ctx context.Context, in *serdes.Instance) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := c.schema.Project(in)
	if err != nil {
		return nil, err
	}
	if c.format == source.YAML {
		b, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("codec: encode yaml: %w", err)
		}
		return b, nil
	}
	var b []byte
	if c.opts.indent != "" {
		b, err = json.MarshalIndent(m, "", c.opts.indent)
	} else {
		b, err = json.Marshal(m)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return b, nil
}
