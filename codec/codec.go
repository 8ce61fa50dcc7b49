// Package codec converts typed values to bytes and back. Hex wraps any of
// them so the stored form is lower-case hexadecimal text.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
