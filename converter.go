package byteman

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/byteman/epoch"
	"github.com/unkn0wn-root/byteman/internal/util"
	pr "github.com/unkn0wn-root/byteman/provider"
)

// Converter exposes the conversion functions with logging, hooks and an
// optional memo store. It is safe for concurrent use.
//
// Rejected arguments are returned exactly as the package-level function
// returns them. Store failures never fail a conversion; the result is
// computed and the failure is logged.
type Converter struct {
	ns      string
	store   pr.Provider
	epochs  epoch.Store
	log     Logger
	hooks   Hooks
	ttl     time.Duration
	minMemo int

	group singleflight.Group
}

func newConverter(opts Options) *Converter {
	var epochs epoch.Store
	if opts.Store != nil {
		epochs = coalesce[epoch.Store](opts.Epochs, epoch.NewLocal())
	}
	return &Converter{
		ns:      coalesce(opts.Namespace, defaultNamespace),
		store:   opts.Store,
		epochs:  epochs,
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:   coalesce[Hooks](opts.Hooks, NopHooks{}),
		ttl:     coalesce(opts.TTL, defaultTTL),
		minMemo: coalesce(opts.MinMemoSize, defaultMinMemoSize),
	}
}

// Memoizing reports whether a store is configured.
func (c *Converter) Memoizing() bool { return c.store != nil }

func (c *Converter) Close(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return errors.Join(c.store.Close(ctx), c.epochs.Close(ctx))
}

// Purge makes every memo entry of the namespace unreachable and returns the
// new epoch. Old entries stay in the store until their TTL runs out.
func (c *Converter) Purge(ctx context.Context) (uint64, error) {
	if c.store == nil {
		return 0, nil
	}
	e, err := c.epochs.Bump(ctx, c.ns)
	if err != nil {
		c.hooks.ProviderError("epoch", c.ns, err)
		return 0, fmt.Errorf("byteman: purge %s: %w", c.ns, err)
	}
	c.log.Info("memo purged", Fields{"ns": c.ns, "epoch": e})
	return e, nil
}

func (c *Converter) HexDigestOf(ctx context.Context, v Value) (string, error) {
	out, err := c.run(ctx, opHexDigestOf, v, KindString, func() (Value, error) {
		d, err := HexDigestOf(v)
		return Str(d), err
	})
	return out.str, err
}

func (c *Converter) DecodeHex(ctx context.Context, v Value) (string, error) {
	out, err := c.run(ctx, opDecodeHex, v, KindString, func() (Value, error) {
		s, err := DecodeHex(v)
		return Str(s), err
	})
	return out.str, err
}

func (c *Converter) IntegerToHexDigest(ctx context.Context, n *big.Int) (string, error) {
	in := Int(n)
	out, err := c.run(ctx, opIntegerToHexDigest, in, KindString, func() (Value, error) {
		d, err := IntegerToHexDigest(n)
		return Str(d), err
	})
	return out.str, err
}

func (c *Converter) IntegerToBuffer(ctx context.Context, n *big.Int) (Buffer, error) {
	in := Int(n)
	out, err := c.run(ctx, opIntegerToBuffer, in, KindBuffer, func() (Value, error) {
		b, err := IntegerToBuffer(n)
		return Value{kind: KindBuffer, buf: b}, err
	})
	return out.Buffer(), err
}

func (c *Converter) BufferToInteger(ctx context.Context, b Buffer) (*big.Int, error) {
	in := Buf(b)
	out, err := c.run(ctx, opBufferToInteger, in, KindInteger, func() (Value, error) {
		n, err := BufferToInteger(in.buf)
		return Value{kind: KindInteger, n: n}, err
	})
	return out.Integer(), err
}

func (c *Converter) BufferToHexDigest(ctx context.Context, b Buffer) (string, error) {
	in := Buf(b)
	out, err := c.run(ctx, opBufferToHexDigest, in, KindString, func() (Value, error) {
		d, err := BufferToHexDigest(in.buf)
		return Str(d), err
	})
	return out.str, err
}

func (c *Converter) BufferToByteString(ctx context.Context, b Buffer) string {
	in := Buf(b)
	out, _ := c.run(ctx, opBufferToByteString, in, KindString, func() (Value, error) {
		return Str(BufferToByteString(in.buf)), nil
	})
	return out.str
}

func (c *Converter) ByteStringToBuffer(ctx context.Context, s string) Buffer {
	out, _ := c.run(ctx, opByteStringToBuffer, Str(s), KindBuffer, func() (Value, error) {
		return Value{kind: KindBuffer, buf: ByteStringToBuffer(s)}, nil
	})
	return out.Buffer()
}

func (c *Converter) DigestToBuffer(ctx context.Context, d string) (Buffer, error) {
	out, err := c.run(ctx, opDigestToBuffer, Str(d), KindBuffer, func() (Value, error) {
		b, err := DigestToBuffer(d)
		return Value{kind: KindBuffer, buf: b}, err
	})
	return out.Buffer(), err
}

func (c *Converter) DigestToInteger(ctx context.Context, d string) (*big.Int, error) {
	out, err := c.run(ctx, opDigestToInteger, Str(d), KindInteger, func() (Value, error) {
		n, err := DigestToInteger(d)
		return Value{kind: KindInteger, n: n}, err
	})
	return out.Integer(), err
}

func (c *Converter) StringToHexDigest(ctx context.Context, s string) string {
	out, _ := c.run(ctx, opStringToHexDigest, Str(s), KindString, func() (Value, error) {
		return Str(StringToHexDigest(s)), nil
	})
	return out.str
}

func (c *Converter) ByteStringToInteger(ctx context.Context, s string) *big.Int {
	out, _ := c.run(ctx, opByteStringToInteger, Str(s), KindInteger, func() (Value, error) {
		return Value{kind: KindInteger, n: ByteStringToInteger(s)}, nil
	})
	return out.Integer()
}

func (c *Converter) Pad(ctx context.Context, v Value, n int, opts PadOptions) (Value, error) {
	opts = opts.withDefaults()
	want := KindString
	if v.kind == KindBuffer && opts.Unit == UnitBytes {
		want = KindBuffer
	}
	op := fmt.Sprintf("%s/%s/%s/%d", opPad, opts.Unit, opts.Anchor, n)
	out, err := c.run(ctx, op, v, want, func() (Value, error) {
		return Pad(v, n, opts)
	})
	if err != nil {
		return Value{}, err
	}
	if out.kind == KindBuffer {
		return Buf(out.buf), nil
	}
	return out, nil
}

// run computes fn, going through the memo store when one is configured and
// the framed input is large enough. want is the kind fn produces; a stored
// entry of any other kind is treated as corrupt.
func (c *Converter) run(ctx context.Context, op string, in Value, want Kind, fn func() (Value, error)) (Value, error) {
	if c.store == nil || !in.Valid() {
		return c.compute(op, fn)
	}
	frame, err := in.MarshalBinary()
	if err != nil || len(frame) < c.minMemo {
		return c.compute(op, fn)
	}

	e, err := c.epochs.Current(ctx, c.ns)
	if err != nil {
		c.hooks.ProviderError("epoch", c.ns, err)
		c.log.Warn("memo epoch lookup failed", Fields{"ns": c.ns, "err": err})
		return c.compute(op, fn)
	}

	key := util.MemoKey(fmt.Sprintf("memo:%s:%d:%s", c.ns, e, op), frame)
	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(ctx, op, key, want); ok {
			return v, nil
		}
		v, err := c.compute(op, fn)
		if err != nil {
			return Value{}, err
		}
		c.remember(ctx, key, v)
		return v, nil
	})
	if err != nil {
		return Value{}, err
	}
	return res.(Value), nil
}

func (c *Converter) compute(op string, fn func() (Value, error)) (Value, error) {
	v, err := fn()
	if err != nil {
		if errors.Is(err, ErrInvalidArgument) {
			c.hooks.ArgumentRejected(op, err)
		}
		c.log.Debug("argument rejected", Fields{"op": op, "err": err})
		return Value{}, err
	}
	return v, nil
}

func (c *Converter) lookup(ctx context.Context, op, key string, want Kind) (Value, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.hooks.ProviderError("get", key, err)
		c.log.Warn("memo get failed", Fields{"key": key, "err": err})
		return Value{}, false
	}
	if !ok {
		c.hooks.MemoMiss(op)
		return Value{}, false
	}

	var v Value
	reason := ""
	if err := v.UnmarshalBinary(raw); err != nil {
		reason = "corrupt"
	} else if v.kind != want {
		reason = "kind_mismatch"
	}
	if reason != "" {
		c.hooks.SelfHealMemo(key, reason)
		c.log.Debug("memo entry dropped", Fields{"key": key, "reason": reason})
		if err := c.store.Del(ctx, key); err != nil {
			c.hooks.ProviderError("del", key, err)
			c.log.Warn("memo del failed", Fields{"key": key, "err": err})
		}
		c.hooks.MemoMiss(op)
		return Value{}, false
	}

	c.hooks.MemoHit(op)
	return v, true
}

func (c *Converter) remember(ctx context.Context, key string, v Value) {
	raw, err := v.MarshalBinary()
	if err != nil {
		return
	}
	ok, err := c.store.Set(ctx, key, raw, int64(len(raw)), c.ttl)
	if err != nil {
		c.hooks.ProviderError("set", key, err)
		c.log.Warn("memo set failed", Fields{"key": key, "err": err})
		return
	}
	if !ok {
		c.hooks.ProviderSetRejected(key)
		c.log.Debug("memo set rejected by provider (pressure)", Fields{"key": key})
	}
}
