// Package source turns encoded documents into the raw maps accepted by
// Schema.Construct.
//
// Decoders keep the exact shape of every value: JSON integers become int64 and
// other JSON numbers float64, YAML integers become int64, mapping keys become
// strings. Symbolize converts string keys into serdes.Symbol keys for records
// declared with symbolized keys.
package source
