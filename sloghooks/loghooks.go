package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/byteman"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	MemoEvery     uint64
	RejectedEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	memoCtr     atomic.Uint64
	rejectedCtr atomic.Uint64
}

var _ byteman.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ArgumentRejected(op string, err error) {
	if h.l == nil || !sample(h.opts.RejectedEvery, &h.rejectedCtr) {
		return
	}
	h.l.Debug("byteman.argument_rejected",
		"op", op,
		"err", err)
}

func (h *Hooks) MemoHit(op string) {
	if h.l == nil || !sample(h.opts.MemoEvery, &h.memoCtr) {
		return
	}
	h.l.Debug("byteman.memo_hit", "op", op)
}

func (h *Hooks) MemoMiss(op string) {
	if h.l == nil || !sample(h.opts.MemoEvery, &h.memoCtr) {
		return
	}
	h.l.Debug("byteman.memo_miss", "op", op)
}

func (h *Hooks) SelfHealMemo(storageKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Info("byteman.self_heal_memo",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("byteman.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) ProviderError(action, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("byteman.provider_error",
		"action", action,
		"key", h.redact(storageKey),
		"err", err)
}
