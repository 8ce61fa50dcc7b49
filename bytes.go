package hexbytes

import (
	"bytes"
	"database/sql/driver"
	"fmt"
)

// Bytes is an immutable byte sequence. The zero value is the empty sequence.
// Bytes never hands out its backing array; ToArray returns a copy.
type Bytes struct {
	b []byte
}

// Wrap returns Bytes backed by b without copying. The caller must not modify b
// afterwards.
func Wrap(b []byte) Bytes { return Bytes{b: b} }

// Copy returns Bytes holding a private copy of b.
func Copy(b []byte) Bytes { return Bytes{b: bytes.Clone(b)} }

// Of returns Bytes holding the given values.
func Of(v ...byte) Bytes { return Copy(v) }

// FromHexString decodes s (optional 0x prefix) in Strict mode.
func FromHexString(s string) (Bytes, error) {
	return FromHexStringExact(s, -1, Strict)
}

// FromHexStringLenient decodes s, padding an odd digit count with a leading zero nibble.
func FromHexStringLenient(s string) (Bytes, error) {
	return FromHexStringExact(s, -1, Lenient)
}

// FromHexStringExact decodes s into exactly size bytes (size < 0: any size).
func FromHexStringExact(s string, size int, mode Mode) (Bytes, error) {
	b, err := Fast.Decode(s, size, mode)
	if err != nil {
		return Bytes{}, err
	}
	return Bytes{b: b}, nil
}

// MustFromHexString is like FromHexString but panics on error.
// Handy for package-level variables and tests.
func MustFromHexString(s string) Bytes {
	b, err := FromHexString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (x Bytes) Len() int { return len(x.b) }

// Get returns the byte at index i. It panics if i is out of range.
func (x Bytes) Get(i int) byte { return x.b[i] }

// ToArray returns a copy of the content.
func (x Bytes) ToArray() []byte {
	out := make([]byte, len(x.b))
	copy(out, x.b)
	return out
}

func (x Bytes) Equal(o Bytes) bool { return bytes.Equal(x.b, o.b) }

// HexString returns the 0x-prefixed encoding built by Reference.
func (x Bytes) HexString() string { return Reference.Encode(x.b, true) }

// UnprefixedHexString returns the encoding without 0x.
func (x Bytes) UnprefixedHexString() string { return Fast.Encode(x.b, false) }

// FastHexString returns the same text as HexString using Fast.
func (x Bytes) FastHexString() string { return Fast.Encode(x.b, true) }

// FastHexByteBufferString returns the same text as HexString using Buffered.
func (x Bytes) FastHexByteBufferString() string { return Buffered.Encode(x.b, true) }

func (x Bytes) FastHex(prefix bool) string { return Fast.Encode(x.b, prefix) }

func (x Bytes) FastHexByteBuffer(prefix bool) string { return Buffered.Encode(x.b, prefix) }

// EllipsisHexString returns the display form built by Reference, e.g.
// 0x010203..0a0b0c for inputs over EllipsisThreshold bytes.
func (x Bytes) EllipsisHexString() string { return Reference.EncodeEllipsis(x.b) }

func (x Bytes) FastEllipsisHexString() string { return Fast.EncodeEllipsis(x.b) }

func (x Bytes) String() string { return x.HexString() }

// MarshalText implements encoding.TextMarshaler as 0x-prefixed hex.
func (x Bytes) MarshalText() ([]byte, error) {
	return []byte(Fast.Encode(x.b, true)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler in Strict mode.
func (x *Bytes) UnmarshalText(text []byte) error {
	b, err := Fast.Decode(string(text), -1, Strict)
	if err != nil {
		return err
	}
	x.b = b
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler with the raw content.
func (x Bytes) MarshalBinary() ([]byte, error) { return x.ToArray(), nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data is copied.
func (x *Bytes) UnmarshalBinary(data []byte) error {
	x.b = bytes.Clone(data)
	return nil
}

// Value implements the driver.Valuer interface for SQL database support.
// Returns the raw bytes for storage as BLOB/BYTEA.
func (x Bytes) Value() (driver.Value, error) {
	return x.ToArray(), nil
}

// Scan implements the sql.Scanner interface for SQL database support.
// Accepts raw bytes, a hex string (Strict) or NULL.
func (x *Bytes) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		x.b = nil
		return nil
	case []byte:
		x.b = bytes.Clone(v)
		return nil
	case string:
		b, err := Fast.Decode(v, -1, Strict)
		if err != nil {
			return fmt.Errorf("failed to scan hex: %w", err)
		}
		x.b = b
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into Bytes", value)
	}
}
