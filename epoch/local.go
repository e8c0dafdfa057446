package epoch

import (
	"context"
	"sync"
)

// Local keeps epochs in-process.
type Local struct {
	mu     sync.RWMutex
	epochs map[string]uint64
}

var _ Store = (*Local)(nil)

func NewLocal() *Local {
	return &Local{epochs: make(map[string]uint64)}
}

func (s *Local) Current(_ context.Context, ns string) (uint64, error) {
	s.mu.RLock()
	e := s.epochs[ns]
	s.mu.RUnlock()
	return e, nil
}

func (s *Local) Bump(_ context.Context, ns string) (uint64, error) {
	s.mu.Lock()
	s.epochs[ns]++
	e := s.epochs[ns]
	s.mu.Unlock()
	return e, nil
}

func (s *Local) Close(context.Context) error { return nil }
