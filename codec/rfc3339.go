package codec

import (
	"time"

	serdes "github.com/riseshia/serdes"
)

// RFC3339 is a custom kind for timestamp strings. Values stay strings on the
// instance, so they project without conversion.
var RFC3339 serdes.Kind = serdes.NewKind("RFC3339", func(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := ParseTime(s)
	return err == nil
})

// ParseTime parses an RFC3339 timestamp, with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatTime renders t in UTC as the canonical value for an RFC3339 field.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Time reads an RFC3339 field as a time.Time.
func Time(in *serdes.Instance, id string) (time.Time, bool) {
	s, ok := serdes.Value[string](in, id)
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
