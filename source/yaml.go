package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a YAML mapping into a raw map.
func DecodeYAML(data []byte) (map[string]any, error) {
	return ReadYAML(bytes.NewReader(data))
}

// ReadYAML decodes the first YAML document from r into a raw map.
func ReadYAML(r io.Reader) (map[string]any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}
	m, ok := normalize(v).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}
