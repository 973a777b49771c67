package wallet

import (
	"context"
	"sync"
)

// Scope ties long-lived provider tasks to the lifetime of their owner.
// Release cancels the context every task runs under, waits for the tasks to
// return (each releases its subscription on the way out), then runs the
// registered cleanups in reverse order.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	released bool
	tasks    sync.WaitGroup
	cleanups []func()
}

// NewScope returns a scope derived from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled on Release.
func (s *Scope) Context() context.Context { return s.ctx }

// Run executes fn under the scope's context and blocks until it returns.
// After Release it returns context.Canceled without calling fn.
func (s *Scope) Run(fn func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return context.Canceled
	}
	s.tasks.Add(1)
	s.mu.Unlock()
	defer s.tasks.Done()

	return fn(s.ctx)
}

// OnRelease registers fn to run during Release, after all tasks returned.
func (s *Scope) OnRelease(fn func()) {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Release stops every task. Safe to call more than once.
func (s *Scope) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	s.cancel()
	s.tasks.Wait()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
