// Package sloghooks implements hexbytes.Hooks on top of log/slog, with
// sampling for the noisy events and redaction of memo storage keys.
package sloghooks

import (
	"crypto/sha256"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/hexbytes"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery   uint64
	DivergenceEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr   atomic.Uint64
	divergenceCtr atomic.Uint64
}

var _ hexbytes.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hexbytes.Fast.Encode(sum[:8], false)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Divergence(op, strategy string, inputLen int) {
	if h.l == nil || !sample(h.opts.DivergenceEvery, &h.divergenceCtr) {
		return
	}
	h.l.Error("hexbytes.divergence",
		"op", op,
		"strategy", strategy,
		"input_len", inputLen)
}

func (h *Hooks) MemoSelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("hexbytes.memo_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) MemoSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("hexbytes.memo_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) MemoProviderError(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("hexbytes.memo_provider_error",
		"op", op,
		"err", err)
}
