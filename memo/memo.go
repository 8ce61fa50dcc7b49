// Package memo caches the results of a hexbytes.Codec in a provider.
//
// Every stored entry is framed by internal/wire. Entries that fail
// validation are deleted on read and recomputed. Failed decodes are never
// stored, and provider failures never fail a call: the result is computed
// through the codec and returned.
package memo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/unkn0wn-root/hexbytes"
	"github.com/unkn0wn-root/hexbytes/internal/util"
	"github.com/unkn0wn-root/hexbytes/internal/wire"
	"github.com/unkn0wn-root/hexbytes/provider"
)

const (
	opEncode         = "encode"
	opEncodeEllipsis = "encode_ellipsis"
	opDecode         = "decode"
)

type Codec struct {
	ns       string
	provider provider.Provider
	inner    hexbytes.Codec
	ttl      time.Duration
	maxInput int
	log      hexbytes.Logger
	hooks    hexbytes.Hooks
}

func New(opts Options) (*Codec, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("hexbytes: memo provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("hexbytes: memo namespace is required")
	}

	c := &Codec{
		ns:       opts.Namespace,
		provider: opts.Provider,
		inner:    opts.Codec,
		ttl:      opts.TTL,
		maxInput: opts.MaxInput,
		log:      opts.Logger,
		hooks:    opts.Hooks,
	}
	if c.inner == nil {
		c.inner = hexbytes.Fast
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	if c.maxInput <= 0 {
		c.maxInput = defaultMaxInput
	}
	if c.log == nil {
		c.log = hexbytes.NopLogger{}
	}
	if c.hooks == nil {
		c.hooks = hexbytes.NopHooks{}
	}
	return c, nil
}

func (c *Codec) Close(ctx context.Context) error {
	return c.provider.Close(ctx)
}

func (c *Codec) Encode(ctx context.Context, b []byte, prefix bool) string {
	if len(b) > c.maxInput {
		return c.inner.Encode(b, prefix)
	}
	k := util.MemoKey(c.ns, opEncode, "prefix="+strconv.FormatBool(prefix), b)
	if p, ok := c.lookup(ctx, k, wire.KindText); ok {
		return string(p)
	}
	s := c.inner.Encode(b, prefix)
	c.store(ctx, k, wire.KindText, []byte(s))
	return s
}

func (c *Codec) EncodeEllipsis(ctx context.Context, b []byte) string {
	if len(b) > c.maxInput {
		return c.inner.EncodeEllipsis(b)
	}
	k := util.MemoKey(c.ns, opEncodeEllipsis, "", b)
	if p, ok := c.lookup(ctx, k, wire.KindText); ok {
		return string(p)
	}
	s := c.inner.EncodeEllipsis(b)
	c.store(ctx, k, wire.KindText, []byte(s))
	return s
}

// Decode returns a fresh slice on every call; callers may modify it.
func (c *Codec) Decode(ctx context.Context, s string, expectedLength int, mode hexbytes.Mode) ([]byte, error) {
	if len(s) > c.maxInput {
		return c.inner.Decode(s, expectedLength, mode)
	}
	if expectedLength < 0 {
		expectedLength = -1
	}
	params := "n=" + strconv.Itoa(expectedLength) + ",m=" + mode.String()
	k := util.MemoKey(c.ns, opDecode, params, []byte(s))
	if p, ok := c.lookup(ctx, k, wire.KindBytes); ok {
		return append([]byte{}, p...), nil
	}
	out, err := c.inner.Decode(s, expectedLength, mode)
	if err != nil {
		return nil, err
	}
	c.store(ctx, k, wire.KindBytes, out)
	return out, nil
}

// lookup returns the payload of a valid entry. Invalid entries are deleted.
func (c *Codec) lookup(ctx context.Context, key string, kind wire.Kind) ([]byte, bool) {
	raw, ok, err := c.provider.Get(ctx, key)
	if err != nil {
		c.providerError("get", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	p, err := wire.Decode(raw, kind)
	if err == nil {
		return p, true
	}

	reason := "corrupt"
	if errors.Is(err, wire.ErrKindMismatch) {
		reason = "kind_mismatch"
	}
	if err := c.provider.Del(ctx, key); err != nil {
		c.providerError("del", key, err)
	}
	c.log.Debug("memo entry dropped", hexbytes.Fields{"key": key, "reason": reason})
	c.hooks.MemoSelfHeal(key, reason)
	return nil, false
}

func (c *Codec) store(ctx context.Context, key string, kind wire.Kind, payload []byte) {
	frame := wire.Encode(kind, payload)
	ok, err := c.provider.Set(ctx, key, frame, int64(len(frame)), c.ttl)
	if err != nil {
		c.providerError("set", key, err)
		return
	}
	if !ok {
		c.log.Debug("memo set rejected by provider (pressure)", hexbytes.Fields{"key": key})
		c.hooks.MemoSetRejected(key)
	}
}

func (c *Codec) providerError(op, key string, err error) {
	c.log.Warn("memo provider error", hexbytes.Fields{"op": op, "key": key, "err": err})
	c.hooks.MemoProviderError(op, err)
}
