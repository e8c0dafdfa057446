// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/byteman"
//	asynchook "github.com/unkn0wn-root/byteman/hooks/async"
//	"github.com/unkn0wn-root/byteman/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    MemoEvery:     100, // sample logs: ~every 100th hit/miss
//	    RejectedEvery: 1,   // log every rejected argument
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	conv, _ := byteman.New(byteman.Options{
//	    Store: provider,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/byteman"
)

// Hooks forwards events to inner on background workers. Events are dropped
// when the queue is full; Dropped counts them.
type Hooks struct {
	inner   byteman.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ byteman.Hooks = (*Hooks)(nil)

func New(inner byteman.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Hooks must not be
// called after Close.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) MemoHit(op string)            { h.try(func() { h.inner.MemoHit(op) }) }
func (h *Hooks) MemoMiss(op string)           { h.try(func() { h.inner.MemoMiss(op) }) }
func (h *Hooks) SelfHealMemo(k, r string)     { h.try(func() { h.inner.SelfHealMemo(k, r) }) }
func (h *Hooks) ProviderSetRejected(k string) { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) ArgumentRejected(op string, err error) {
	h.try(func() { h.inner.ArgumentRejected(op, err) })
}
func (h *Hooks) ProviderError(action, k string, err error) {
	h.try(func() { h.inner.ProviderError(action, k, err) })
}
