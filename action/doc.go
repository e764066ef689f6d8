// Package action binds signals to callbacks and collects those bindings
// into the ordered registry a worker polls each iteration.
//
// An Action couples one signal.Signal with one callback whose arguments
// were captured at construction time. Polling an Action's signaled state
// and invoking its callback are separate operations, which lets a worker
// batch-detect several signaled conditions before acting on any of them.
// The automatic trigger mode collapses the two for fire-and-forget
// bindings: polling a signaled automatic Action consumes the signal and
// invokes the callback as a side effect of the poll itself.
//
// A Registry preserves registration order, which is also dispatch order,
// and rejects duplicate registrations as configuration errors.
package action
