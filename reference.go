package hexbytes

import "strings"

// referenceCodec is the straightforward implementation every other strategy
// is checked against. It grows its output one byte at a time and applies the
// decode policy without sharing any planning code with the fast paths.
type referenceCodec struct{}

func (referenceCodec) Encode(src []byte, prefix bool) string {
	var sb strings.Builder
	if prefix {
		sb.WriteString(HexPrefix)
	}
	for _, v := range src {
		sb.WriteByte(nibbles.fwd[v>>4])
		sb.WriteByte(nibbles.fwd[v&0x0f])
	}
	return sb.String()
}

func (r referenceCodec) EncodeEllipsis(src []byte) string {
	if len(src) <= EllipsisThreshold {
		return r.Encode(src, true)
	}
	var sb strings.Builder
	sb.WriteString(HexPrefix)
	for _, v := range src[:EllipsisLeadBytes] {
		sb.WriteByte(nibbles.fwd[v>>4])
		sb.WriteByte(nibbles.fwd[v&0x0f])
	}
	sb.WriteString(EllipsisMarker)
	for _, v := range src[len(src)-EllipsisTrailBytes:] {
		sb.WriteByte(nibbles.fwd[v>>4])
		sb.WriteByte(nibbles.fwd[v&0x0f])
	}
	return sb.String()
}

func (referenceCodec) Decode(s string, expectedLength int, mode Mode) ([]byte, error) {
	digits, base := s, 0
	if hasHexPrefix(s) {
		digits, base = s[prefixLen:], prefixLen
	}
	if len(digits)%2 != 0 {
		if mode != Lenient {
			return nil, &DecodeError{Err: ErrOddDigitCount, Input: s, Offset: -1, Got: len(digits)}
		}
		// the implicit '0' has no position in s
		digits = "0" + digits
		base--
	}
	size := len(digits) / 2
	if expectedLength >= 0 && expectedLength != size && mode != Lenient {
		return nil, &DecodeError{Err: ErrLengthMismatch, Input: s, Offset: -1, Want: expectedLength, Got: size}
	}

	out := make([]byte, 0)
	for i := 0; i < len(digits); i += 2 {
		hi := nibbles.inv[digits[i]]
		if hi == invalidNibble {
			return nil, &DecodeError{Err: ErrMalformedCharacter, Input: s, Offset: base + i, Char: s[base+i]}
		}
		lo := nibbles.inv[digits[i+1]]
		if lo == invalidNibble {
			return nil, &DecodeError{Err: ErrMalformedCharacter, Input: s, Offset: base + i + 1, Char: s[base+i+1]}
		}
		out = append(out, hi<<4|lo)
	}
	if expectedLength >= 0 {
		out = fitLength(out, expectedLength)
	}
	return out, nil
}

// fitLength left-pads b with zero bytes, or keeps its low-order n bytes.
func fitLength(b []byte, n int) []byte {
	switch {
	case len(b) == n:
		return b
	case len(b) < n:
		return append(make([]byte, n-len(b)), b...)
	default:
		out := make([]byte, n)
		copy(out, b[len(b)-n:])
		return out
	}
}
