package signal

import (
	"context"
	"sync"
	"time"
)

// Signal is a thread-safe, waitable boolean flag.
//
// Set and Clear are idempotent. Wait blocks the calling goroutine until
// the signal becomes set or the timeout elapses; a timeout <= 0 waits
// indefinitely. The returned bool reports whether the signal became set.
//
// Implementations must be safe for concurrent use from any number of
// goroutines.
type Signal interface {
	// Set marks the signal as set and wakes all waiters.
	Set()

	// Clear marks the signal as unset.
	Clear()

	// IsSet reports whether the signal is currently set without blocking.
	IsSet() bool

	// Wait blocks until the signal becomes set or the timeout elapses.
	// A timeout <= 0 waits indefinitely. It returns whether the signal
	// became set.
	Wait(timeout time.Duration) bool
}

// Flag is the in-process Signal implementation.
//
// The zero value is not usable; create instances with NewFlag.
type Flag struct {
	mu  sync.Mutex
	set bool
	ch  chan struct{} // closed while set; replaced on Clear
}

// NewFlag returns a new unset Flag.
func NewFlag() *Flag {
	return &Flag{ch: make(chan struct{})}
}

// Set marks the flag as set and wakes all waiters. Setting an already-set
// flag is a no-op.
func (f *Flag) Set() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.set {
		return
	}
	f.set = true
	close(f.ch)
}

// Clear marks the flag as unset. Clearing an already-clear flag is a no-op.
func (f *Flag) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.set {
		return
	}
	f.set = false
	f.ch = make(chan struct{})
}

// IsSet reports whether the flag is currently set.
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Wait blocks the calling goroutine until the flag becomes set or the
// timeout elapses. A timeout <= 0 waits indefinitely. It returns whether
// the flag became set.
func (f *Flag) Wait(timeout time.Duration) bool {
	f.mu.Lock()
	if f.set {
		f.mu.Unlock()
		return true
	}
	ch := f.ch
	f.mu.Unlock()

	if timeout <= 0 {
		<-ch
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		// The flag may have been set between the channel snapshot and
		// timer expiry.
		return f.IsSet()
	}
}

// WaitContext blocks until the flag becomes set or the context is done.
// It returns whether the flag became set.
func (f *Flag) WaitContext(ctx context.Context) bool {
	f.mu.Lock()
	if f.set {
		f.mu.Unlock()
		return true
	}
	ch := f.ch
	f.mu.Unlock()

	select {
	case <-ch:
		return true
	case <-ctx.Done():
		return f.IsSet()
	}
}
