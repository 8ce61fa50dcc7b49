package memo

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/hexbytes"
	"github.com/unkn0wn-root/hexbytes/internal/util"
	"github.com/unkn0wn-root/hexbytes/internal/wire"
	pr "github.com/unkn0wn-root/hexbytes/provider"
	"github.com/unkn0wn-root/hexbytes/provider/ristretto"
)

type memProvider struct {
	mu     sync.Mutex
	m      map[string][]byte
	getErr error
	setErr error
	reject bool
}

var _ pr.Provider = (*memProvider)(nil)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string][]byte)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, false, p.getErr
	}
	v, ok := p.m[key]
	return v, ok, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setErr != nil {
		return false, p.setErr
	}
	if p.reject {
		return false, nil
	}
	p.m[key] = value
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.m, key)
	p.mu.Unlock()
	return nil
}
func (p *memProvider) Close(_ context.Context) error { return nil }

func (p *memProvider) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// countingCodec counts calls that reach the underlying codec.
type countingCodec struct {
	hexbytes.Codec
	calls atomic.Int64
}

func (c *countingCodec) Encode(b []byte, prefix bool) string {
	c.calls.Add(1)
	return c.Codec.Encode(b, prefix)
}

func (c *countingCodec) EncodeEllipsis(b []byte) string {
	c.calls.Add(1)
	return c.Codec.EncodeEllipsis(b)
}

func (c *countingCodec) Decode(s string, n int, m hexbytes.Mode) ([]byte, error) {
	c.calls.Add(1)
	return c.Codec.Decode(s, n, m)
}

type recHooks struct {
	hexbytes.NopHooks
	mu       sync.Mutex
	healed   []string
	rejected int
	provider []string
}

func (h *recHooks) MemoSelfHeal(_, reason string) {
	h.mu.Lock()
	h.healed = append(h.healed, reason)
	h.mu.Unlock()
}

func (h *recHooks) MemoSetRejected(string) {
	h.mu.Lock()
	h.rejected++
	h.mu.Unlock()
}

func (h *recHooks) MemoProviderError(op string, _ error) {
	h.mu.Lock()
	h.provider = append(h.provider, op)
	h.mu.Unlock()
}

type warnLogger struct {
	hexbytes.NopLogger
	warns atomic.Int64
}

func (l *warnLogger) Warn(string, hexbytes.Fields) { l.warns.Add(1) }

type fixture struct {
	memo  *Codec
	mp    *memProvider
	inner *countingCodec
	hooks *recHooks
	log   *warnLogger
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		mp:    newMemProvider(),
		inner: &countingCodec{Codec: hexbytes.Fast},
		hooks: &recHooks{},
		log:   &warnLogger{},
	}
	opts := Options{
		Namespace: "test",
		Provider:  f.mp,
		Codec:     f.inner,
		Logger:    f.log,
		Hooks:     f.hooks,
	}
	if mutate != nil {
		mutate(&opts)
	}
	m, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.memo = m
	return f
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Options{Namespace: "x"}); err == nil {
		t.Fatalf("expected error without provider")
	}
	if _, err := New(Options{Provider: newMemProvider()}); err == nil {
		t.Fatalf("expected error without namespace")
	}
	m, err := New(Options{Namespace: "x", Provider: newMemProvider()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.inner != hexbytes.Fast || m.ttl != defaultTTL || m.maxInput != defaultMaxInput {
		t.Fatalf("defaults not applied: %+v", m)
	}
}

func TestEncodeHitsAfterMiss(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	in := []byte{0xde, 0xad, 0xbe, 0xef}

	for i := 0; i < 3; i++ {
		if got := f.memo.Encode(ctx, in, true); got != "0xdeadbeef" {
			t.Fatalf("Encode = %s", got)
		}
	}
	if n := f.inner.calls.Load(); n != 1 {
		t.Fatalf("inner calls = %d, want 1", n)
	}

	// the prefix flag is part of the key
	if got := f.memo.Encode(ctx, in, false); got != "deadbeef" {
		t.Fatalf("Encode(no prefix) = %s", got)
	}
	if got := f.memo.EncodeEllipsis(ctx, in); got != "0xdeadbeef" {
		t.Fatalf("EncodeEllipsis = %s", got)
	}
	if n := f.inner.calls.Load(); n != 3 {
		t.Fatalf("inner calls = %d, want 3", n)
	}
	if f.mp.len() != 3 {
		t.Fatalf("stored entries = %d, want 3", f.mp.len())
	}
}

func TestDecodeKeysIncludeLengthAndMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	a, err := f.memo.Decode(ctx, "0xff", -1, hexbytes.Strict)
	if err != nil || !bytes.Equal(a, []byte{0xff}) {
		t.Fatalf("Decode = %x, %v", a, err)
	}
	b, err := f.memo.Decode(ctx, "0xff", 3, hexbytes.Lenient)
	if err != nil || !bytes.Equal(b, []byte{0, 0, 0xff}) {
		t.Fatalf("Decode(padded) = %x, %v", b, err)
	}
	if _, err := f.memo.Decode(ctx, "0xff", 3, hexbytes.Strict); !errors.Is(err, hexbytes.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	// -5 and -1 both mean unset
	if _, err := f.memo.Decode(ctx, "0xff", -5, hexbytes.Strict); err != nil {
		t.Fatal(err)
	}
	if n := f.inner.calls.Load(); n != 3 {
		t.Fatalf("inner calls = %d, want 3", n)
	}
}

func TestDecodeErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	for i := 0; i < 2; i++ {
		_, err := f.memo.Decode(ctx, "0xzz", -1, hexbytes.Lenient)
		var de *hexbytes.DecodeError
		if !errors.As(err, &de) || de.Offset != 2 {
			t.Fatalf("expected DecodeError at offset 2, got %v", err)
		}
	}
	if f.inner.calls.Load() != 2 || f.mp.len() != 0 {
		t.Fatalf("failed decode must not be stored: calls=%d entries=%d", f.inner.calls.Load(), f.mp.len())
	}
}

func TestDecodeReturnsPrivateCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	first, _ := f.memo.Decode(ctx, "010203", -1, hexbytes.Strict)
	first[0] = 0xff
	second, _ := f.memo.Decode(ctx, "010203", -1, hexbytes.Strict)
	second[1] = 0xff
	third, _ := f.memo.Decode(ctx, "010203", -1, hexbytes.Strict)
	if !bytes.Equal(third, []byte{1, 2, 3}) {
		t.Fatalf("stored result was aliased: %x", third)
	}

	empty, err := f.memo.Decode(ctx, "0x", -1, hexbytes.Strict)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty miss = %#v, %v", empty, err)
	}
	empty, err = f.memo.Decode(ctx, "0x", -1, hexbytes.Strict)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty hit = %#v, %v", empty, err)
	}
}

func TestSelfHeal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored []byte
		reason string
	}{
		{"corrupt", []byte("not a frame"), "corrupt"},
		{"kind mismatch", wire.Encode(wire.KindText, []byte("0x01")), "kind_mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			k := util.MemoKey("test", opDecode, "n=-1,m=strict", []byte("0x01"))
			f.mp.m[k] = tt.stored

			got, err := f.memo.Decode(ctx, "0x01", -1, hexbytes.Strict)
			if err != nil || !bytes.Equal(got, []byte{1}) {
				t.Fatalf("Decode = %x, %v", got, err)
			}
			if len(f.hooks.healed) != 1 || f.hooks.healed[0] != tt.reason {
				t.Fatalf("healed = %v, want [%s]", f.hooks.healed, tt.reason)
			}
			if _, err := wire.Decode(f.mp.m[k], wire.KindBytes); err != nil {
				t.Fatalf("entry not replaced with a valid frame: %v", err)
			}
		})
	}
}

func TestProviderFailuresDoNotFailCalls(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.mp.getErr = errors.New("boom")

	if got := f.memo.Encode(ctx, []byte{1}, false); got != "01" {
		t.Fatalf("Encode = %s", got)
	}
	f.mp.getErr = nil
	f.mp.setErr = errors.New("full")
	if got, err := f.memo.Decode(ctx, "02", 1, hexbytes.Strict); err != nil || got[0] != 2 {
		t.Fatalf("Decode = %x, %v", got, err)
	}

	if got := f.hooks.provider; len(got) != 2 || got[0] != "get" || got[1] != "set" {
		t.Fatalf("provider error ops = %v", got)
	}
	if f.log.warns.Load() != 2 {
		t.Fatalf("warns = %d, want 2", f.log.warns.Load())
	}
}

func TestSetRejected(t *testing.T) {
	f := newFixture(t, nil)
	f.mp.reject = true
	f.memo.EncodeEllipsis(context.Background(), make([]byte, 32))
	if f.hooks.rejected != 1 {
		t.Fatalf("rejected = %d, want 1", f.hooks.rejected)
	}
}

func TestMaxInputBypass(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(o *Options) { o.MaxInput = 4 })

	f.memo.Encode(ctx, make([]byte, 5), true)
	f.memo.Decode(ctx, "0x0102", -1, hexbytes.Strict)
	if f.mp.len() != 0 {
		t.Fatalf("oversized inputs must bypass the store, got %d entries", f.mp.len())
	}
	f.memo.Encode(ctx, make([]byte, 4), true)
	if f.mp.len() != 1 {
		t.Fatalf("entries = %d, want 1", f.mp.len())
	}
}

func TestRistrettoBackedMatchesReference(t *testing.T) {
	ctx := context.Background()
	rp, err := ristretto.New(ristretto.Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("ristretto.New: %v", err)
	}
	m, err := New(Options{Namespace: "rt", Provider: rp, Codec: hexbytes.Buffered})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close(ctx) })

	inputs := [][]byte{{}, {0}, {1, 2, 3, 4, 5, 6}, {1, 2, 3, 4, 5, 6, 7}, bytes.Repeat([]byte{0xab}, 300)}
	for round := 0; round < 2; round++ {
		for _, in := range inputs {
			if got, want := m.Encode(ctx, in, true), hexbytes.Reference.Encode(in, true); got != want {
				t.Fatalf("Encode = %s, want %s", got, want)
			}
			if got, want := m.EncodeEllipsis(ctx, in), hexbytes.Reference.EncodeEllipsis(in); got != want {
				t.Fatalf("EncodeEllipsis = %s, want %s", got, want)
			}
			s := hexbytes.Reference.Encode(in, false)
			got, err := m.Decode(ctx, s, len(in), hexbytes.Strict)
			if err != nil || !bytes.Equal(got, in) {
				t.Fatalf("Decode(%s) = %x, %v", s, got, err)
			}
		}
		rp.Wait()
	}
}
