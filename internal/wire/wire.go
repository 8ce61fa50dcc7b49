package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1
	hdrLen       = 4 + 1 + 1 + 4
)

// Kind tags what a memo entry holds.
type Kind byte

const (
	KindText  Kind = 1 // hex text from Encode/EncodeEllipsis
	KindBytes Kind = 2 // bytes from a successful Decode
)

var (
	ErrCorrupt      = errors.New("hexbytes: corrupt memo entry")
	ErrKindMismatch = errors.New("hexbytes: memo entry kind mismatch")
	magic4          = [...]byte{'H', 'E', 'X', 'M'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload:
//
//	magic(4) | ver(1) | kind(1) | plen(u32 be) | payload(plen)
func Encode(kind Kind, payload []byte) []byte {
	out := make([]byte, hdrLen+len(payload))
	copy(out, magic4[:])
	out[4] = version
	out[5] = byte(kind)
	binary.BigEndian.PutUint32(out[6:hdrLen], uint32(len(payload)))
	copy(out[hdrLen:], payload)
	return out
}

// Decode validates the frame and returns a sub-slice of b. The frame must
// be exactly header plus payload.
func Decode(b []byte, want Kind) ([]byte, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return nil, ErrCorrupt
	}
	if k := Kind(b[5]); k != KindText && k != KindBytes {
		return nil, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[6:hdrLen]))
	if plen != len(b)-hdrLen {
		return nil, ErrCorrupt
	}
	if Kind(b[5]) != want {
		return nil, ErrKindMismatch
	}
	return b[hdrLen:], nil
}
