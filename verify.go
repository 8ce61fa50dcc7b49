package hexbytes

import (
	"bytes"
	"errors"
	"sync/atomic"
)

const (
	opEncode         = "encode"
	opEncodeEllipsis = "encode_ellipsis"
	opDecode         = "decode"
)

// verifiedCodec samples calls of inner and replays them through Reference.
// On divergence the reference result wins and the event is logged.
type verifiedCodec struct {
	inner    Codec
	strategy string
	every    uint64
	log      Logger
	hooks    Hooks

	encodeCtr   atomic.Uint64
	ellipsisCtr atomic.Uint64
	decodeCtr   atomic.Uint64
}

func newVerified(inner Codec, opts Options) *verifiedCodec {
	return &verifiedCodec{
		inner:    inner,
		strategy: opts.Strategy.String(),
		every:    opts.VerifyEvery,
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

func (v *verifiedCodec) sample(ctr *atomic.Uint64) bool {
	if v.every <= 1 {
		return true
	}
	return ctr.Add(1)%v.every == 0
}

func (v *verifiedCodec) diverged(op string, inputLen int) {
	v.log.Error("hexbytes: strategy diverged from reference", Fields{
		"op":        op,
		"strategy":  v.strategy,
		"input_len": inputLen,
	})
	v.hooks.Divergence(op, v.strategy, inputLen)
}

func (v *verifiedCodec) Encode(src []byte, prefix bool) string {
	got := v.inner.Encode(src, prefix)
	if !v.sample(&v.encodeCtr) {
		return got
	}
	if want := Reference.Encode(src, prefix); got != want {
		v.diverged(opEncode, len(src))
		return want
	}
	return got
}

func (v *verifiedCodec) EncodeEllipsis(src []byte) string {
	got := v.inner.EncodeEllipsis(src)
	if !v.sample(&v.ellipsisCtr) {
		return got
	}
	if want := Reference.EncodeEllipsis(src); got != want {
		v.diverged(opEncodeEllipsis, len(src))
		return want
	}
	return got
}

func (v *verifiedCodec) Decode(s string, expectedLength int, mode Mode) ([]byte, error) {
	got, gotErr := v.inner.Decode(s, expectedLength, mode)
	if !v.sample(&v.decodeCtr) {
		return got, gotErr
	}
	want, wantErr := Reference.Decode(s, expectedLength, mode)
	if !sameDecode(got, gotErr, want, wantErr) {
		v.diverged(opDecode, len(s))
		return want, wantErr
	}
	return got, gotErr
}

// sameDecode compares two decode outcomes field by field.
func sameDecode(a []byte, aErr error, b []byte, bErr error) bool {
	if aErr == nil || bErr == nil {
		return aErr == nil && bErr == nil && bytes.Equal(a, b)
	}
	var ae, be *DecodeError
	if !errors.As(aErr, &ae) || !errors.As(bErr, &be) {
		return aErr.Error() == bErr.Error()
	}
	return *ae == *be
}
