package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateKeyError reports a key that appears twice in one JSON object.
// Path is a JSON Pointer to the duplicated member.
type DuplicateKeyError struct {
	Path string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("source: duplicate key %q at %s", e.Key, e.Path)
}

type dupFrame struct {
	object  bool
	keys    map[string]struct{}
	key     string
	index   int
	wantKey bool
}

// CheckDuplicateKeys scans a JSON document and returns a *DuplicateKeyError
// for the first object key that repeats. YAML decoding rejects duplicate keys
// on its own.
func CheckDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []*dupFrame
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.wantKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return fmt.Errorf("source: decode json: %w", io.ErrUnexpectedEOF)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("source: decode json: %w", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &dupFrame{object: true, keys: map[string]struct{}{}, wantKey: true})
			case '[':
				stack = append(stack, &dupFrame{})
			default:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].wantKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					return &DuplicateKeyError{Path: pointer(stack[:n-1]) + "/" + escapePointer(v), Key: v}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.wantKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

func pointer(frames []*dupFrame) string {
	var b strings.Builder
	for _, f := range frames {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escapePointer(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
