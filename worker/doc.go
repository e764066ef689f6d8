// Package worker implements the cooperative worker-loop state machine.
//
// A Worker owns one action.Registry, one quitting flag, and one unit-of-work
// function, and runs on a single dedicated goroutine. Each iteration it:
//
//  1. Polls the registry for signaled actions (automatic actions fire
//     during the poll itself)
//  2. Runs the command hook, when one is configured
//  3. Dispatches each signaled action in registration order: invoke the
//     callback, then clear its signal
//  4. Runs the post-events hook
//  5. Invokes the work function, with the item from the item source
//     when one is configured
//  6. Hands the result to the result handler
//  7. Runs the post-work hook
//  8. Sleeps for the poll interval, then re-evaluates the quitting flag
//
// Hooks return a Decision; Stop is a normal, non-error outcome that ends
// the loop. Any error from an action callback, a hook, or the work
// function also ends the loop, is recorded, and is surfaced through Err
// and Join; nothing inside the loop retries or recovers.
//
// The loop has two states, running and stopped; stopped is terminal and a
// Worker is not restartable. Cancellation is cooperative only: a quit
// request (via the quit signal, RequestStop, or context cancellation) is
// honored at iteration boundaries, never by preempting an in-flight work
// call.
package worker
