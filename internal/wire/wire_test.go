package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func mustDecode(t *testing.T, b []byte, k Kind) []byte {
	t.Helper()
	p, err := Decode(b, k)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return p
}

func TestRoundtrip(t *testing.T) {
	cases := []struct {
		kind    Kind
		payload []byte
	}{
		{KindText, nil},
		{KindText, []byte("0x010203..08090a")},
		{KindBytes, []byte{0, 1, 2, 0xff}},
	}
	for _, tc := range cases {
		enc := Encode(tc.kind, tc.payload)
		if len(enc) != hdrLen+len(tc.payload) {
			t.Fatalf("frame length = %d", len(enc))
		}
		if p := mustDecode(t, enc, tc.kind); !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := append(Encode(KindText, []byte("ab")), 0xDE, 0xAD)
	if _, err := Decode(enc, KindText); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(KindBytes, []byte("abc"))
	mutate := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), enc...))
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"bad version", mutate(func(b []byte) []byte { b[4] = version + 1; return b })},
		{"unknown kind", mutate(func(b []byte) []byte { b[5] = 9; return b })},
		{"length overflow", mutate(func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[6:hdrLen], 0xFFFFFFFF)
			return b
		})},
		{"truncated payload", enc[:len(enc)-1]},
		{"truncated header", enc[:hdrLen-1]},
		{"foreign value", []byte("0xabcd")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.in, KindBytes); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestKindMismatch(t *testing.T) {
	enc := Encode(KindText, []byte("0x00"))
	if _, err := Decode(enc, KindBytes); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}
