package codec

import (
	"fmt"

	"github.com/unkn0wn-root/hexbytes"
)

// Hex runs Inner and renders its output as hexadecimal text through Hex.
// A nil Hex uses hexbytes.Fast.
//
// Decode is strict: the text must have an even number of digits and may
// carry an optional 0x prefix.
type Hex[V any] struct {
	Inner  Codec[V]
	Hex    hexbytes.Codec
	Prefix bool
}

func (c Hex[V]) hex() hexbytes.Codec {
	if c.Hex == nil {
		return hexbytes.Fast
	}
	return c.Hex
}

func (c Hex[V]) Encode(v V) ([]byte, error) {
	raw, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return []byte(c.hex().Encode(raw, c.Prefix)), nil
}

func (c Hex[V]) Decode(b []byte) (V, error) {
	raw, err := c.hex().Decode(string(b), -1, hexbytes.Strict)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("codec: hex payload: %w", err)
	}
	return c.Inner.Decode(raw)
}
