// Package signal provides waitable boolean flags for cross-goroutine
// notification.
//
// A Signal is the only cross-thread shared resource in the worker loop
// model: it may be set, cleared, polled, and waited on concurrently from
// any number of goroutines. One Signal instance may be shared by multiple
// workers, for example a single quit signal broadcast process-wide.
//
// Two implementations are provided:
//
//   - Flag: the in-process implementation, backed by a mutex and a
//     broadcast channel
//   - Etcd: a distributed implementation backed by an etcd key, for
//     sharing a signal (typically quit) across processes
package signal
