package action

import (
	"sync"

	"github.com/bhdz/workersz"
	"github.com/bhdz/workersz/signal"
)

// Registry is the ordered collection of Actions owned by exactly one
// worker. Registration order is dispatch order. The Registry also keeps a
// reverse mapping from Action identity to the Signal it was registered
// with.
//
// Registry is safe for concurrent use, although in the intended model
// only the owning worker polls it.
type Registry struct {
	mu      sync.RWMutex
	actions []*Action
	signals map[*Action]signal.Signal
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		signals: make(map[*Action]signal.Signal),
	}
}

// Register appends a to the dispatch sequence and records its signal
// mapping. Registering the same Action instance twice is a configuration
// error; the registry is left unchanged.
func (r *Registry) Register(a *Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.signals[a]; exists {
		return workersz.NewConfigurationError("Registry.Register", workersz.ErrDuplicateAction).
			WithContext(map[string]any{"registered": len(r.actions)})
	}

	r.signals[a] = a.Signal()
	r.actions = append(r.actions, a)
	return nil
}

// SignalFor returns the Signal recorded for a at registration time. The
// bool reports whether a is registered.
func (r *Registry) SignalFor(a *Action) (signal.Signal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sig, ok := r.signals[a]
	return sig, ok
}

// ActionFor returns the first Action, in registration order, whose
// recorded Signal is sig. The bool reports whether a match was found.
func (r *Registry) ActionFor(sig signal.Signal) (*Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.actions {
		if r.signals[a] == sig {
			return a, true
		}
	}
	return nil, false
}

// PollSignaled polls every registered Action in registration order and
// returns the signaled ones that still need explicit dispatch, preserving
// that order. Automatic Actions fire (and consume their signal) during
// the poll itself and are therefore excluded from the result.
//
// A failure raised by an automatic callback aborts the poll and is
// propagated unmodified.
func (r *Registry) PollSignaled() ([]*Action, error) {
	r.mu.RLock()
	actions := make([]*Action, len(r.actions))
	copy(actions, r.actions)
	r.mu.RUnlock()

	var signaled []*Action
	for _, a := range actions {
		set, err := a.IsSet()
		if err != nil {
			return nil, err
		}
		if set && !a.Automatic() {
			signaled = append(signaled, a)
		}
	}
	return signaled, nil
}

// Len returns the number of registered Actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Actions returns a copy of the registered Actions in registration order.
func (r *Registry) Actions() []*Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Action, len(r.actions))
	copy(out, r.actions)
	return out
}
