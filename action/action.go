package action

import (
	"sync"
	"time"

	"github.com/bhdz/workersz/signal"
)

// Callback is the callable bound to an Action. Arguments are captured at
// construction time, typically by closing over them or through Bind;
// invocation never takes new arguments.
type Callback func() (any, error)

// Bind adapts a variadic function and fixed arguments into a Callback.
// The arguments are captured once, at bind time, and replayed unchanged
// on every invocation.
//
// Example:
//
//	cb := action.Bind(func(args ...any) (any, error) {
//		fmt.Println(args...)
//		return nil, nil
//	}, "hello", "world")
func Bind(fn func(args ...any) (any, error), args ...any) Callback {
	captured := make([]any, len(args))
	copy(captured, args)
	return func() (any, error) {
		return fn(captured...)
	}
}

// Option configures an Action at construction time.
type Option func(*Action)

// WithAutomatic sets the automatic trigger mode. When enabled, polling a
// signaled Action consumes the signal and invokes the callback before
// IsSet returns.
func WithAutomatic(automatic bool) Option {
	return func(a *Action) {
		a.automatic = automatic
	}
}

// Action couples one Signal with one callback. The pair is immutable
// after construction except through SetSignal and SetCallback, which
// fully replace their field.
//
// Actions are safe for concurrent use; the bound Signal carries its own
// synchronization.
type Action struct {
	mu        sync.RWMutex
	sig       signal.Signal
	cb        Callback
	automatic bool
}

// New creates an Action binding sig to cb.
func New(sig signal.Signal, cb Callback, opts ...Option) *Action {
	a := &Action{sig: sig, cb: cb}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Signal returns the bound Signal.
func (a *Action) Signal() signal.Signal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sig
}

// SetSignal replaces the bound Signal.
func (a *Action) SetSignal(sig signal.Signal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sig = sig
}

// SetCallback replaces the bound callback.
func (a *Action) SetCallback(cb Callback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cb = cb
}

// Automatic reports whether the automatic trigger mode is enabled.
func (a *Action) Automatic() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.automatic
}

// IsSet polls the bound Signal. If the signal is set and the automatic
// trigger mode is enabled, the signal is consumed and the callback is
// invoked synchronously before IsSet returns; consuming first guarantees
// the callback fires at most once per set, even across repeated polls.
//
// The bool reflects only the signal state at poll time, never the
// callback's outcome. A callback error is returned unmodified.
func (a *Action) IsSet() (bool, error) {
	a.mu.RLock()
	sig, cb, automatic := a.sig, a.cb, a.automatic
	a.mu.RUnlock()

	if !sig.IsSet() {
		return false, nil
	}
	if !automatic {
		return true, nil
	}

	sig.Clear()
	_, err := cb()
	return true, err
}

// Call invokes the bound callback with its captured arguments and returns
// its result. A callback failure is propagated unmodified.
func (a *Action) Call() (any, error) {
	a.mu.RLock()
	cb := a.cb
	a.mu.RUnlock()
	return cb()
}

// Set delegates to the bound Signal.
func (a *Action) Set() {
	a.Signal().Set()
}

// Clear delegates to the bound Signal.
func (a *Action) Clear() {
	a.Signal().Clear()
}

// Wait delegates to the bound Signal.
func (a *Action) Wait(timeout time.Duration) bool {
	return a.Signal().Wait(timeout)
}
