package worker

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/bhdz/workersz/action"
	"github.com/bhdz/workersz/signal"
)

// Decision is the result of a continuation hook. The zero value is
// Continue, so a hook that does nothing special lets the loop proceed.
type Decision int

const (
	// Continue lets the loop proceed to the next step.
	Continue Decision = iota

	// Stop requests cooperative loop termination. Stop is a normal
	// outcome, distinguishable from a callback failure.
	Stop
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// WorkFunc is the unit-of-work callable invoked once per iteration. When
// an item source is configured, item carries the value it supplied for
// this iteration; otherwise item is nil. The returned value is the
// iteration's result.
type WorkFunc func(ctx context.Context, item any) (any, error)

// ResultFunc receives the work result each iteration. Its effects are
// side effects only (publishing, logging); it cannot veto continuation.
type ResultFunc func(ctx context.Context, result any)

// Hook is an optional extension point that may veto continuation by
// returning Stop.
type Hook func(ctx context.Context) Decision

// ItemSource supplies an optional input item for an iteration. ok
// reports whether an item was available; when false the work function is
// called with a nil item.
type ItemSource func(ctx context.Context) (item any, ok bool)

// defaultPollInterval bounds the idle sleep between iterations so an
// unsignaled worker does not spin a CPU.
const defaultPollInterval = 10 * time.Millisecond

// config holds configuration for a Worker instance.
type config struct {
	name          string
	logger        *slog.Logger
	tracer        trace.Tracer
	meter         metric.Meter
	work          WorkFunc
	result        ResultFunc
	command       Hook
	postEvents    Hook
	postWork      Hook
	source        ItemSource
	quitSignal    signal.Signal
	commandSignal signal.Signal
	pollInterval  time.Duration
	actions       []*action.Action
}

func defaultConfig() *config {
	return &config{
		name: "worker",
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
		tracer:       tracenoop.NewTracerProvider().Tracer("workersz"),
		meter:        metricnoop.NewMeterProvider().Meter("workersz"),
		pollInterval: defaultPollInterval,
	}
}

// Option configures a Worker at construction time.
type Option func(*config)

// WithName sets the worker's name, used in logs and telemetry.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets a custom structured logger. If not provided, a default
// JSON logger writing to stdout is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; one span is recorded per work
// call. Defaults to a noop tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the worker's iteration and
// dispatch counters. Defaults to a noop meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithWork sets the unit-of-work function. Required.
func WithWork(fn WorkFunc) Option {
	return func(c *config) {
		c.work = fn
	}
}

// WithResult sets the result handler invoked with each iteration's work
// result. Default: results are discarded.
func WithResult(fn ResultFunc) Option {
	return func(c *config) {
		c.result = fn
	}
}

// WithCommandHook enables the pre-dispatch command step and sets its
// hook. When this option is absent the loop omits the command step
// entirely; both are configurations of the same state machine.
func WithCommandHook(fn Hook) Option {
	return func(c *config) {
		c.command = fn
	}
}

// WithPostEventsHook sets the hook run after action dispatch, before the
// work call. Default: Continue.
func WithPostEventsHook(fn Hook) Option {
	return func(c *config) {
		c.postEvents = fn
	}
}

// WithPostWorkHook sets the hook run after result routing. Default:
// Continue.
func WithPostWorkHook(fn Hook) Option {
	return func(c *config) {
		c.postWork = fn
	}
}

// WithItemSource sets the optional item source consulted before each work
// call.
func WithItemSource(src ItemSource) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithQuitSignal binds a quit signal, typically shared by many workers.
// A non-automatic quit action is auto-registered ahead of all other
// actions; its callback sets the quitting flag, so a quit request is
// dispatched through the normal path and honored at the next iteration
// boundary.
func WithQuitSignal(sig signal.Signal) Option {
	return func(c *config) {
		c.quitSignal = sig
	}
}

// WithCommandSignal stores a command signal. The slot is retained for
// compatibility with older embedders and is not registered with the
// worker's registry; it is exposed through Worker.CommandSignal.
func WithCommandSignal(sig signal.Signal) Option {
	return func(c *config) {
		c.commandSignal = sig
	}
}

// WithPollInterval sets the bounded sleep between iterations. A
// non-positive interval disables the sleep, making the loop a pure busy
// poll. Default: 10ms.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithActions registers the given actions, in order, after the
// auto-registered quit action.
func WithActions(actions ...*action.Action) Option {
	return func(c *config) {
		c.actions = append(c.actions, actions...)
	}
}
