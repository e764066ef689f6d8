// Package workersz provides a reusable worker-loop execution template:
// a background goroutine that alternates between checking out-of-band
// signals bound to callback actions, running a unit of work, and routing
// the work's result, all inside a cooperative loop that can be stopped
// without preemption.
//
// # Core Concepts
//
// The library is organized around a small set of concepts:
//
//   - Signals: thread-safe, waitable boolean flags used for cross-goroutine
//     notification (package signal)
//   - Actions: a Signal bound to a callback with arguments captured at
//     construction time (package action)
//   - Registries: the ordered collection of Actions owned by one worker
//     (package action)
//   - Workers: the cooperative state machine that detects signaled
//     Actions, dispatches their callbacks, invokes the unit of work, and
//     decides whether to continue (package worker)
//
// # Data Flow
//
// Each iteration, a Worker asks its Registry which Actions have a
// signaled Signal, invokes each matched Action's callback and clears its
// Signal, calls the configured work function, hands the result to the
// result handler, and evaluates its continuation hooks. Any hook may veto
// continuation by returning worker.Stop; vetoes are normal outcomes, not
// errors.
//
// # Getting Started
//
// A minimal worker bound to a shared quit signal:
//
//	quit := signal.NewFlag()
//
//	w, err := worker.New(
//		worker.WithName("greeter"),
//		worker.WithQuitSignal(quit),
//		worker.WithWork(func(ctx context.Context, _ any) (any, error) {
//			return "hello", nil
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := w.Start(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
//	// ... later, from any goroutine:
//	quit.Set()
//	_ = w.Join(5 * time.Second)
//
// # Error Handling
//
// This package defines the structured Error type and the sentinel errors
// shared by the subpackages. Callback, hook, and work failures are never
// caught by the loop: the first error ends the worker's goroutine and is
// surfaced through Worker.Err and Worker.Join. Supervision and restart
// are the embedder's responsibility.
package workersz
