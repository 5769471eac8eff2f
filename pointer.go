package serdes

import (
	"strconv"
	"strings"
)

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointerField returns the JSON Pointer segment for an object member.
func pointerField(name string) string { return "/" + pointerEscaper.Replace(name) }

// pointerIndex returns the JSON Pointer segment for a sequence element.
func pointerIndex(i int) string { return "/" + strconv.Itoa(i) }
