package hexbytes

import "unsafe"

// fastCodec sizes its output exactly once and writes digits by index through
// the pair table. Encoded text is handed out without a second copy.
type fastCodec struct{}

func (fastCodec) Encode(src []byte, prefix bool) string {
	n, off := len(src)*2, 0
	if prefix {
		n, off = n+prefixLen, prefixLen
	}
	if n == 0 {
		return ""
	}
	dst := make([]byte, n)
	if prefix {
		dst[0], dst[1] = '0', 'x'
	}
	nibbles.encodeInto(dst[off:], src)
	return b2s(dst)
}

func (f fastCodec) EncodeEllipsis(src []byte) string {
	if len(src) <= EllipsisThreshold {
		return f.Encode(src, true)
	}
	dst := make([]byte, ellipsisLen)
	writeEllipsis(dst, src)
	return b2s(dst)
}

func (fastCodec) Decode(s string, expectedLength int, mode Mode) ([]byte, error) {
	p, err := planDecode(s, expectedLength, mode)
	if err != nil {
		return nil, err
	}
	out := make([]byte, p.destSize)
	// shift moves logical byte k to out[k+shift]; negative when truncating.
	shift := p.destSize - p.size
	d := p.digits
	k, i := 0, 0
	if p.pad == 1 {
		lo := nibbles.inv[d[0]]
		if lo == invalidNibble {
			return nil, p.malformed(s, 1)
		}
		if shift >= 0 {
			out[shift] = lo
		}
		k, i = 1, 1
	}
	for ; i+1 < len(d); i += 2 {
		hi, lo := nibbles.inv[d[i]], nibbles.inv[d[i+1]]
		if hi|lo > 0x0f {
			if hi == invalidNibble {
				return nil, p.malformed(s, i+p.pad)
			}
			return nil, p.malformed(s, i+1+p.pad)
		}
		if at := k + shift; at >= 0 {
			out[at] = hi<<4 | lo
		}
		k++
	}
	return out, nil
}

// writeEllipsis fills dst[:ellipsisLen] with the truncated form of src.
// len(src) must exceed EllipsisThreshold.
func writeEllipsis(dst, src []byte) {
	_ = dst[ellipsisLen-1] // bounds check hint
	dst[0], dst[1] = '0', 'x'
	off := prefixLen + nibbles.encodeInto(dst[prefixLen:], src[:EllipsisLeadBytes])
	off += copy(dst[off:], EllipsisMarker)
	nibbles.encodeInto(dst[off:], src[len(src)-EllipsisTrailBytes:])
}

// b2s converts b to a string without copying. b must not be modified
// afterwards; every caller hands over a freshly allocated slice.
func b2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
