package hexbytes

import "fmt"

const (
	// HexPrefix is emitted by prefixed encodings and accepted (as 0x or 0X) by Decode.
	HexPrefix = "0x"

	// EllipsisLeadBytes and EllipsisTrailBytes are the bytes kept on each side
	// of EllipsisMarker once the input exceeds EllipsisThreshold bytes.
	EllipsisLeadBytes  = 3
	EllipsisTrailBytes = 3
	EllipsisThreshold  = EllipsisLeadBytes + EllipsisTrailBytes
	EllipsisMarker     = ".."

	ellipsisLen = prefixLen + 2*EllipsisLeadBytes + len(EllipsisMarker) + 2*EllipsisTrailBytes
)

// Mode selects how Decode treats odd digit counts and length mismatches.
// Invalid characters are rejected in every mode.
type Mode uint8

const (
	// Strict rejects odd digit counts and length mismatches.
	Strict Mode = iota
	// Lenient pads odd input with a leading zero nibble and forces the
	// expected length by left zero-padding or dropping leading bytes.
	Lenient
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Codec converts between raw bytes and hexadecimal text.
// Implementations are stateless from the caller's view and safe for concurrent use.
type Codec interface {
	// Encode returns two lower-case digits per byte, optionally after "0x".
	Encode(src []byte, prefix bool) string
	// EncodeEllipsis returns Encode(src, true) for short inputs and a fixed-width
	// "0x<lead>..<trail>" form otherwise.
	EncodeEllipsis(src []byte) string
	// Decode parses s. expectedLength < 0 disables the length check.
	Decode(s string, expectedLength int, mode Mode) ([]byte, error)
}

var (
	// Reference is the plain implementation the others are measured against.
	Reference Codec = referenceCodec{}
	// Fast writes into exactly-sized storage with table lookups.
	Fast Codec = fastCodec{}
	// Buffered works through a pooled scratch buffer of DefaultScratchSize bytes.
	Buffered = NewBuffered(DefaultScratchSize)
)

// Strategy names one of the built-in codecs.
type Strategy uint8

const (
	StrategyFast Strategy = iota
	StrategyReference
	StrategyBuffered
)

func (s Strategy) String() string {
	switch s {
	case StrategyFast:
		return "fast"
	case StrategyReference:
		return "reference"
	case StrategyBuffered:
		return "buffered"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Options configure New. The zero value yields Fast.
type Options struct {
	Strategy    Strategy
	ScratchSize int // StrategyBuffered only; 0 => DefaultScratchSize

	// VerifyEvery > 0 re-runs every Nth call of each operation through
	// Reference and reports divergence via Logger and Hooks.
	VerifyEvery uint64

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// New builds a Codec from opts.
func New(opts Options) (Codec, error) {
	var c Codec
	switch opts.Strategy {
	case StrategyFast:
		c = Fast
	case StrategyReference:
		c = Reference
	case StrategyBuffered:
		if size := coalesce(opts.ScratchSize, DefaultScratchSize); size != DefaultScratchSize {
			c = NewBuffered(size)
		} else {
			c = Buffered
		}
	default:
		return nil, fmt.Errorf("hexbytes: unknown strategy %d", opts.Strategy)
	}
	if opts.VerifyEvery == 0 {
		return c, nil
	}
	return newVerified(c, opts), nil
}
