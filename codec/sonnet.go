package codec

import "github.com/sugawarayuuta/sonnet"

// Sonnet is a drop-in JSON codec backed by sugawarayuuta/sonnet.
// Output is compatible with JSONCodec.
type Sonnet[V any] struct{}

func (Sonnet[V]) Encode(v V) ([]byte, error) { return sonnet.Marshal(v) }
func (Sonnet[V]) Decode(b []byte) (V, error) {
	var v V
	err := sonnet.Unmarshal(b, &v)
	return v, err
}
