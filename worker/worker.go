package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/bhdz/workersz"
	"github.com/bhdz/workersz/action"
	"github.com/bhdz/workersz/health"
	"github.com/bhdz/workersz/signal"
)

// Loop states. stateStopped is terminal; a Worker is never restartable.
const (
	stateNew int32 = iota
	stateRunning
	stateStopped
)

// Worker is a cooperative worker-loop instance. It owns its action
// registry and quitting flag; only the bound signals may be shared with
// other workers.
//
// Create instances with New, start the loop with Start, and wait for
// termination with Join. All methods are safe for concurrent use.
type Worker struct {
	name          string
	id            string
	logger        *slog.Logger
	tracer        trace.Tracer
	actions       *action.Registry
	work          WorkFunc
	result        ResultFunc
	command       Hook
	postEvents    Hook
	postWork      Hook
	source        ItemSource
	quitSignal    signal.Signal
	commandSignal signal.Signal
	pollInterval  time.Duration

	iterCounter     metric.Int64Counter
	dispatchCounter metric.Int64Counter
	errCounter      metric.Int64Counter

	state      atomic.Int32
	quitting   atomic.Bool
	iterations atomic.Uint64

	stopOnce sync.Once
	stop     chan struct{} // closed by RequestStop to cut the idle sleep

	done   chan struct{} // closed when the loop goroutine ends
	runErr error         // written once, before done is closed
}

// New creates a Worker from the given options. A work function is
// required. When a quit signal is supplied, the quit action is registered
// ahead of any actions given via WithActions.
func New(opts ...Option) (*Worker, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.work == nil {
		return nil, workersz.NewConfigurationError("worker.New", workersz.ErrInvalidConfig).
			WithContext(map[string]any{"reason": "work function is required"})
	}

	id := generateWorkerID()

	w := &Worker{
		name:          cfg.name,
		id:            id,
		logger:        cfg.logger.With("worker", cfg.name, "worker_id", id),
		tracer:        cfg.tracer,
		actions:       action.NewRegistry(),
		work:          cfg.work,
		result:        cfg.result,
		command:       cfg.command,
		postEvents:    cfg.postEvents,
		postWork:      cfg.postWork,
		source:        cfg.source,
		quitSignal:    cfg.quitSignal,
		commandSignal: cfg.commandSignal,
		pollInterval:  cfg.pollInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}

	var err error
	w.iterCounter, err = cfg.meter.Int64Counter("workersz.iterations",
		metric.WithDescription("Completed worker loop iterations."))
	if err != nil {
		return nil, workersz.NewInternalError("worker.New", err)
	}
	w.dispatchCounter, err = cfg.meter.Int64Counter("workersz.actions.dispatched",
		metric.WithDescription("Actions dispatched through the explicit path."))
	if err != nil {
		return nil, workersz.NewInternalError("worker.New", err)
	}
	w.errCounter, err = cfg.meter.Int64Counter("workersz.work.errors",
		metric.WithDescription("Work calls that returned an error."))
	if err != nil {
		return nil, workersz.NewInternalError("worker.New", err)
	}

	if cfg.quitSignal != nil {
		quitAction := action.New(cfg.quitSignal, func() (any, error) {
			w.quitting.Store(true)
			return nil, nil
		})
		if err := w.actions.Register(quitAction); err != nil {
			return nil, err
		}
	}

	for _, a := range cfg.actions {
		if err := w.actions.Register(a); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Name returns the worker's configured name.
func (w *Worker) Name() string {
	return w.name
}

// ID returns the worker's unique instance identifier.
func (w *Worker) ID() string {
	return w.id
}

// Registry returns the worker's action registry.
func (w *Worker) Registry() *action.Registry {
	return w.actions
}

// Register adds an action to the worker's registry. Typically called
// before Start; actions registered while the loop runs are picked up on
// the next detection pass.
func (w *Worker) Register(a *action.Action) error {
	return w.actions.Register(a)
}

// CommandSignal returns the command signal stored at construction, or
// nil. The slot is retained for compatibility; the worker never registers
// or polls it.
func (w *Worker) CommandSignal() signal.Signal {
	return w.commandSignal
}

// Iterations returns the number of fully completed loop iterations.
func (w *Worker) Iterations() uint64 {
	return w.iterations.Load()
}

// Running reports whether the loop goroutine is currently running.
func (w *Worker) Running() bool {
	return w.state.Load() == stateRunning
}

// Start spawns the loop goroutine. It fails with ErrAlreadyStarted if
// the worker is running or has already terminated.
//
// The context is passed to every hook, the work function, and the item
// source. Its cancellation is treated as a stop request and, like every
// stop request, is honored at iteration boundaries only.
func (w *Worker) Start(ctx context.Context) error {
	if !w.state.CompareAndSwap(stateNew, stateRunning) {
		return workersz.NewConfigurationError("Worker.Start", workersz.ErrAlreadyStarted)
	}

	w.logger.Info("worker starting",
		"actions", w.actions.Len(),
		"poll_interval", w.pollInterval,
	)

	go w.run(ctx)
	return nil
}

// RequestStop sets the quitting flag directly and wakes the idle sleep.
// The loop exits at the next iteration boundary. To stop a fleet of
// workers sharing one quit signal, hold the signal set until every
// worker has stopped; each worker clears it as it dispatches its quit
// action.
func (w *Worker) RequestStop() {
	w.quitting.Store(true)
	w.stopOnce.Do(func() { close(w.stop) })
}

// Join blocks until the loop goroutine terminates or the timeout
// elapses; a timeout <= 0 waits indefinitely. On termination it returns
// the loop's terminal error, if any.
func (w *Worker) Join(timeout time.Duration) error {
	if w.state.Load() == stateNew {
		return workersz.NewConfigurationError("Worker.Join", workersz.ErrNotStarted)
	}

	if timeout <= 0 {
		<-w.done
		return w.runErr
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-w.done:
		return w.runErr
	case <-timer.C:
		return workersz.NewTimeoutError("Worker.Join",
			fmt.Errorf("worker %q did not terminate within %v", w.name, timeout))
	}
}

// Err returns the loop's terminal error once the worker has stopped, or
// nil while it is still running (or stopped cleanly).
func (w *Worker) Err() error {
	select {
	case <-w.done:
		return w.runErr
	default:
		return nil
	}
}

// Health reports the worker's liveness for supervision.
func (w *Worker) Health() health.Status {
	details := map[string]any{
		"worker_id":  w.id,
		"iterations": w.iterations.Load(),
	}

	switch w.state.Load() {
	case stateNew:
		return health.NewDegradedStatus(fmt.Sprintf("worker %q not started", w.name), details)
	case stateRunning:
		return health.NewHealthyStatus(fmt.Sprintf("worker %q running", w.name))
	default:
		if err := w.Err(); err != nil {
			details["error"] = err.Error()
			return health.NewUnhealthyStatus(fmt.Sprintf("worker %q failed", w.name), details)
		}
		return health.NewDegradedStatus(fmt.Sprintf("worker %q stopped", w.name), details)
	}
}

// run is the loop goroutine. It owns the per-iteration state machine and
// terminates on the first Stop decision, the first error, or a quit
// request observed at an iteration boundary.
func (w *Worker) run(ctx context.Context) {
	var err error

	defer func() {
		w.runErr = err
		w.state.Store(stateStopped)
		close(w.done)

		if err != nil {
			w.logger.Error("worker stopped on error", "error", err, "iterations", w.iterations.Load())
		} else {
			w.logger.Info("worker stopped", "iterations", w.iterations.Load())
		}
	}()

	for !w.quitting.Load() {
		if ctx.Err() != nil {
			w.logger.Debug("worker loop stopped", "reason", "context_cancelled")
			return
		}

		// Detect. Automatic actions fire here as a poll side effect.
		signaled, perr := w.actions.PollSignaled()
		if perr != nil {
			err = perr
			return
		}

		// Command step, only in the command-aware configuration.
		if w.command != nil && w.command(ctx) == Stop {
			w.logger.Debug("worker loop stopped", "reason", "command_hook")
			return
		}

		// Dispatch in registration order: run, then clear.
		for _, a := range signaled {
			if _, cerr := a.Call(); cerr != nil {
				err = cerr
				return
			}
			a.Clear()
		}
		if len(signaled) > 0 {
			w.dispatchCounter.Add(ctx, int64(len(signaled)))
		}

		if w.postEvents != nil && w.postEvents(ctx) == Stop {
			w.logger.Debug("worker loop stopped", "reason", "postevents_hook")
			return
		}

		// Work. The item source may or may not supply an input this
		// iteration; the work function sees nil when it does not.
		var item any
		if w.source != nil {
			if got, ok := w.source(ctx); ok {
				item = got
			}
		}

		result, werr := w.invokeWork(ctx, item)
		if werr != nil {
			err = werr
			return
		}

		if w.result != nil {
			w.result(ctx, result)
		}

		if w.postWork != nil && w.postWork(ctx) == Stop {
			w.logger.Debug("worker loop stopped", "reason", "postwork_hook")
			return
		}

		w.iterations.Add(1)
		w.iterCounter.Add(ctx, 1)

		w.idle(ctx)
	}
}

// invokeWork runs the work function inside a span.
func (w *Worker) invokeWork(ctx context.Context, item any) (any, error) {
	workCtx, span := w.tracer.Start(ctx, "worker.work",
		trace.WithAttributes(
			attribute.String("worker.name", w.name),
			attribute.String("worker.id", w.id),
			attribute.Int64("worker.iteration", int64(w.iterations.Load())),
		))
	defer span.End()

	result, err := w.work(workCtx, item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		w.errCounter.Add(ctx, 1)
	}
	return result, err
}

// idle sleeps for the poll interval between iterations so an unsignaled
// worker does not spin. The sleep is cut short by RequestStop or context
// cancellation.
func (w *Worker) idle(ctx context.Context) {
	if w.pollInterval <= 0 {
		return
	}

	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.stop:
	case <-ctx.Done():
	}
}

// generateWorkerID creates a unique identifier for this worker instance.
// Uses hostname + PID + UUID for uniqueness.
func generateWorkerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	pid := os.Getpid()
	id := uuid.New().String()[:8]

	return fmt.Sprintf("%s-%d-%s", hostname, pid, id)
}
