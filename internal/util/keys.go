package util

import (
	"crypto/sha256"
	"strings"

	"github.com/unkn0wn-root/hexbytes"
)

// MemoKey returns memo:<ns>:<op>:<digest>, where digest is the full SHA-256
// of params and input in lower-case hex. params must not contain NUL.
func MemoKey(ns, op, params string, input []byte) string {
	h := sha256.New()
	h.Write([]byte(params))
	h.Write([]byte{0})
	h.Write(input)
	var sum [sha256.Size]byte
	h.Sum(sum[:0])

	var b strings.Builder
	b.Grow(len("memo:") + len(ns) + 1 + len(op) + 1 + 2*sha256.Size)
	b.WriteString("memo:")
	b.WriteString(ns)
	b.WriteByte(':')
	b.WriteString(op)
	b.WriteByte(':')
	b.WriteString(hexbytes.Fast.Encode(sum[:], false))
	return b.String()
}
