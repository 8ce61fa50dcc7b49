package hexbytes

const (
	hexDigits = "0123456789abcdef"

	// invalidNibble marks inverse-table entries that are not hex digits.
	invalidNibble byte = 0xff

	prefixLen = 2
)

// nibbleTable is built once at package init and only read afterwards.
type nibbleTable struct {
	// fwd maps a 4-bit value to its lower-case digit.
	fwd [16]byte
	// inv maps any byte to its 4-bit value, or invalidNibble.
	inv [256]byte
	// pairs holds both digits of every byte value: pairs[2*v], pairs[2*v+1].
	pairs [512]byte
}

var nibbles = newNibbleTable()

func newNibbleTable() *nibbleTable {
	t := &nibbleTable{}
	copy(t.fwd[:], hexDigits)
	for i := range t.inv {
		t.inv[i] = invalidNibble
	}
	for i := 0; i < 16; i++ {
		t.inv[hexDigits[i]] = byte(i)
	}
	for i := 10; i < 16; i++ {
		t.inv['A'+i-10] = byte(i)
	}
	for v := 0; v < 256; v++ {
		t.pairs[2*v] = hexDigits[v>>4]
		t.pairs[2*v+1] = hexDigits[v&0x0f]
	}
	return t
}

// putPair writes the two digits of v at dst[0:2].
func (t *nibbleTable) putPair(dst []byte, v byte) {
	_ = dst[1] // bounds check hint
	i := int(v) << 1
	dst[0] = t.pairs[i]
	dst[1] = t.pairs[i+1]
}

// encodeInto writes 2*len(src) digits into dst and returns the count.
func (t *nibbleTable) encodeInto(dst, src []byte) int {
	dst = dst[:len(src)*2]
	for i, v := range src {
		t.putPair(dst[i*2:], v)
	}
	return len(src) * 2
}

// hasHexPrefix reports whether s starts with 0x or 0X.
func hasHexPrefix(s string) bool {
	return len(s) >= prefixLen && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// decodePlan is the length/parity outcome shared by every decoder, computed
// before any digit is looked at.
type decodePlan struct {
	digits   string // input without prefix
	base     int    // offset of digits[0] in the original input
	pad      int    // 1 when an implicit leading '0' nibble is used
	size     int    // bytes encoded by digits (after padding)
	destSize int    // bytes returned to the caller
}

// offset returns the position in the original input of logical digit i
// (logical digits include the implicit pad).
func (p *decodePlan) offset(i int) int { return p.base + i - p.pad }

// planDecode applies the parity and length policy. Character validation is
// left to the caller so each strategy can fuse it with its decode loop.
func planDecode(s string, expectedLength int, mode Mode) (decodePlan, error) {
	p := decodePlan{digits: s}
	if hasHexPrefix(s) {
		p.digits = s[prefixLen:]
		p.base = prefixLen
	}
	n := len(p.digits)
	if n&1 != 0 {
		if mode != Lenient {
			return p, &DecodeError{Err: ErrOddDigitCount, Input: s, Offset: -1, Got: n}
		}
		p.pad = 1
	}
	p.size = (n + p.pad) / 2
	p.destSize = p.size
	if expectedLength >= 0 && expectedLength != p.size {
		if mode != Lenient {
			return p, &DecodeError{Err: ErrLengthMismatch, Input: s, Offset: -1, Want: expectedLength, Got: p.size}
		}
		p.destSize = expectedLength
	}
	return p, nil
}

// malformed reports the first invalid character at logical digit i.
func (p *decodePlan) malformed(s string, i int) error {
	off := p.offset(i)
	return &DecodeError{Err: ErrMalformedCharacter, Input: s, Offset: off, Char: s[off]}
}
