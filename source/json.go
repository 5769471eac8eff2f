package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// ErrNotObject is returned when a document's top-level value is not a map.
var ErrNotObject = errors.New("source: top-level value is not an object")

// DecodeJSON decodes a JSON object into a raw map. Anything but whitespace
// after the object is rejected.
func DecodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("source: decode json: unexpected data after top-level value")
	}
	m, ok := normalize(v).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}

// ReadJSON reads r to the end and decodes it as DecodeJSON does.
func ReadJSON(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read json: %w", err)
	}
	return DecodeJSON(data)
}
