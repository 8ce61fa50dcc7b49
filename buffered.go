package hexbytes

import (
	"strings"
	"sync"
)

const (
	// DefaultScratchSize bounds the pooled buffer used by Buffered.
	DefaultScratchSize = 1024

	minScratchSize = 64
)

type scratch struct{ b []byte }

// bufferedCodec routes all work through a pooled, fixed-size scratch buffer.
// Inputs larger than the buffer are processed in chunks, so the buffer never
// grows and can be reused across calls.
type bufferedCodec struct {
	size int
	pool sync.Pool
}

// NewBuffered returns a Codec whose scratch buffer holds size bytes. Sizes
// below 64 are raised to 64.
func NewBuffered(size int) Codec {
	if size < minScratchSize {
		size = minScratchSize
	}
	c := &bufferedCodec{size: size}
	c.pool.New = func() any { return &scratch{b: make([]byte, size)} }
	return c
}

func (c *bufferedCodec) get() *scratch  { return c.pool.Get().(*scratch) }
func (c *bufferedCodec) put(s *scratch) { c.pool.Put(s) }

func (c *bufferedCodec) Encode(src []byte, prefix bool) string {
	n := len(src) * 2
	if prefix {
		n += prefixLen
	}
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(n)
	if prefix {
		sb.WriteString(HexPrefix)
	}
	buf := c.get()
	defer c.put(buf)
	step := len(buf.b) / 2
	for len(src) > 0 {
		m := min(step, len(src))
		w := nibbles.encodeInto(buf.b, src[:m])
		sb.Write(buf.b[:w])
		src = src[m:]
	}
	return sb.String()
}

func (c *bufferedCodec) EncodeEllipsis(src []byte) string {
	if len(src) <= EllipsisThreshold {
		return c.Encode(src, true)
	}
	buf := c.get()
	defer c.put(buf)
	writeEllipsis(buf.b, src)
	return string(buf.b[:ellipsisLen])
}

func (c *bufferedCodec) Decode(s string, expectedLength int, mode Mode) ([]byte, error) {
	p, err := planDecode(s, expectedLength, mode)
	if err != nil {
		return nil, err
	}
	out := make([]byte, p.destSize)
	shift := p.destSize - p.size

	buf := c.get()
	defer c.put(buf)
	chunk := buf.b[:0]
	// k is the logical index of chunk[0].
	k := 0
	flush := func() {
		place(out, chunk, k+shift)
		k += len(chunk)
		chunk = chunk[:0]
	}

	d := p.digits
	i := 0
	if p.pad == 1 {
		lo := nibbles.inv[d[0]]
		if lo == invalidNibble {
			return nil, p.malformed(s, 1)
		}
		chunk = append(chunk, lo)
		i = 1
	}
	for ; i+1 < len(d); i += 2 {
		hi, lo := nibbles.inv[d[i]], nibbles.inv[d[i+1]]
		if hi|lo > 0x0f {
			if hi == invalidNibble {
				return nil, p.malformed(s, i+p.pad)
			}
			return nil, p.malformed(s, i+1+p.pad)
		}
		if len(chunk) == cap(chunk) {
			flush()
		}
		chunk = append(chunk, hi<<4|lo)
	}
	flush()
	return out, nil
}

// place copies chunk into out starting at index at. Bytes that would land
// before out[0] are dropped.
func place(out, chunk []byte, at int) {
	if at < 0 {
		if -at >= len(chunk) {
			return
		}
		chunk = chunk[-at:]
		at = 0
	}
	copy(out[at:], chunk)
}
