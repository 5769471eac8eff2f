package codec

import (
	"errors"
	"net/http"

	"github.com/elnormous/contenttype"

	serdes "github.com/riseshia/serdes"
	"github.com/riseshia/serdes/source"
)

// ErrUnsupportedMediaType is returned when no codec serves a request's media
// type.
var ErrUnsupportedMediaType = errors.New("codec: unsupported media type")

var (
	jsonMediaType = contenttype.NewMediaType("application/json")
	yamlMediaType = contenttype.NewMediaType("application/yaml")
	// legacy YAML media types accepted on request bodies
	yamlAliases = []contenttype.MediaType{
		contenttype.NewMediaType("application/x-yaml"),
		contenttype.NewMediaType("text/yaml"),
	}
	availableMediaTypes = []contenttype.MediaType{jsonMediaType, yamlMediaType}
)

// ForRequest picks the codec matching the request body's Content-Type.
func ForRequest(r *http.Request, s *serdes.Schema, opts ...Option) (Codec, error) {
	ctype, err := contenttype.GetMediaType(r)
	if err != nil {
		return nil, ErrUnsupportedMediaType
	}
	switch {
	case ctype.Matches(jsonMediaType):
		return For(source.JSON, s, opts...), nil
	case ctype.Matches(yamlMediaType):
		return For(source.YAML, s, opts...), nil
	}
	for _, alias := range yamlAliases {
		if ctype.Matches(alias) {
			return For(source.YAML, s, opts...), nil
		}
	}
	return nil, ErrUnsupportedMediaType
}

// Negotiate picks the response codec from the request's Accept header.
func Negotiate(r *http.Request, s *serdes.Schema, opts ...Option) (Codec, error) {
	accepted, _, err := contenttype.GetAcceptableMediaType(r, availableMediaTypes)
	if err != nil {
		return nil, ErrUnsupportedMediaType
	}
	if accepted.Matches(yamlMediaType) {
		return For(source.YAML, s, opts...), nil
	}
	return For(source.JSON, s, opts...), nil
}
