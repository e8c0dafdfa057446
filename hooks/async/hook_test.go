package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/byteman"
)

type recorder struct {
	byteman.NopHooks
	mu   sync.Mutex
	hits []string
	errs []error
	gate chan struct{}
}

func (r *recorder) MemoHit(op string) {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.hits = append(r.hits, op)
	r.mu.Unlock()
}

func (r *recorder) ArgumentRejected(_ string, err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func TestCloseDrainsQueue(t *testing.T) {
	rec := &recorder{}
	h := New(rec, 2, 16)

	h.MemoHit("HexDigestOf")
	h.MemoHit("DecodeHex")
	h.ArgumentRejected("Pad", errors.New("bad unit"))
	h.Close()
	h.Close() // idempotent

	require.ElementsMatch(t, []string{"HexDigestOf", "DecodeHex"}, rec.hits)
	require.Len(t, rec.errs, 1)
	require.Zero(t, h.Dropped())
}

func TestFullQueueDrops(t *testing.T) {
	rec := &recorder{gate: make(chan struct{})}
	h := New(rec, 1, 1)

	h.MemoHit("a") // taken by the worker, blocks on gate
	// fill the queue, then overflow it
	for i := 0; i < 10; i++ {
		h.MemoHit("b")
	}
	require.NotZero(t, h.Dropped())

	close(rec.gate)
	h.Close()
}
