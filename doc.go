// Package hexbytes implements hexadecimal encoding and decoding for immutable
// byte sequences, with several interchangeable strategies that must produce
// identical results.
//
// Components:
//   - Codec: Encode (full, optional 0x prefix), EncodeEllipsis (fixed-width
//     display form) and Decode (expected length + Strict/Lenient mode).
//   - Reference: grows its output one byte at a time. The oracle.
//   - Fast: exact-size output written by index through a pair table.
//   - Buffered: same as Fast, but through a pooled, bounded scratch buffer.
//   - Bytes: immutable value type with hex, text, binary and SQL surfaces.
//
// Decode policy, applied in this order:
//
//	parity  odd digit count   Strict: ErrOddDigitCount   Lenient: leading zero nibble
//	length  size != expected  Strict: ErrLengthMismatch  Lenient: left zero-pad / drop leading bytes
//	chars   non-hex digit     always ErrMalformedCharacter
//
// Ellipsis form (inputs over EllipsisThreshold bytes):
//
//	0x010203..fdfeff
//
// Outer layers: codec (hex-framed value codecs), memo (cached results in a
// provider.Provider), log/* and sloghooks (observability adapters).
package hexbytes
