package worker

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/bhdz/workersz/signal"
)

func TestDecisionString(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{Continue, "continue"},
		{Stop, "stop"},
		{Decision(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.decision.String())
		})
	}
}

func TestDecisionZeroValueIsContinue(t *testing.T) {
	var d Decision
	assert.Equal(t, Continue, d)
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "worker", cfg.name)
	assert.NotNil(t, cfg.logger)
	assert.NotNil(t, cfg.tracer)
	assert.NotNil(t, cfg.meter)
	assert.Equal(t, defaultPollInterval, cfg.pollInterval)
	assert.Nil(t, cfg.work)
	assert.Nil(t, cfg.result)
	assert.Nil(t, cfg.command)
	assert.Nil(t, cfg.postEvents)
	assert.Nil(t, cfg.postWork)
	assert.Nil(t, cfg.source)
	assert.Nil(t, cfg.quitSignal)
	assert.Nil(t, cfg.commandSignal)
	assert.Empty(t, cfg.actions)
}

func TestOptionsApply(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	quit := signal.NewFlag()
	cmd := signal.NewFlag()

	cfg := defaultConfig()
	for _, opt := range []Option{
		WithName("indexer"),
		WithLogger(logger),
		WithTracer(tracer),
		WithWork(noopWork),
		WithResult(func(ctx context.Context, result any) {}),
		WithCommandHook(func(ctx context.Context) Decision { return Continue }),
		WithPostEventsHook(func(ctx context.Context) Decision { return Continue }),
		WithPostWorkHook(func(ctx context.Context) Decision { return Continue }),
		WithItemSource(func(ctx context.Context) (any, bool) { return nil, false }),
		WithQuitSignal(quit),
		WithCommandSignal(cmd),
		WithPollInterval(50 * time.Millisecond),
	} {
		opt(cfg)
	}

	assert.Equal(t, "indexer", cfg.name)
	assert.Equal(t, logger, cfg.logger)
	assert.NotNil(t, cfg.work)
	assert.NotNil(t, cfg.result)
	assert.NotNil(t, cfg.command)
	assert.NotNil(t, cfg.postEvents)
	assert.NotNil(t, cfg.postWork)
	assert.NotNil(t, cfg.source)
	assert.Equal(t, quit, cfg.quitSignal)
	assert.Equal(t, cmd, cfg.commandSignal)
	assert.Equal(t, 50*time.Millisecond, cfg.pollInterval)
}

func TestWithCommandSignalStoredNotRegistered(t *testing.T) {
	cmd := signal.NewFlag()
	w := newTestWorker(t, WithWork(noopWork), WithCommandSignal(cmd))

	assert.Equal(t, cmd, w.CommandSignal())
	assert.Equal(t, 0, w.Registry().Len())
}

func TestWithNameInWorker(t *testing.T) {
	w := newTestWorker(t, WithWork(noopWork), WithName("crawler"))
	assert.Equal(t, "crawler", w.Name())
}

func TestZeroPollIntervalBusyPolls(t *testing.T) {
	quit := signal.NewFlag()
	w := newTestWorker(t,
		WithWork(noopWork),
		WithQuitSignal(quit),
		WithPollInterval(0),
	)

	require.NoError(t, w.Start(context.Background()))

	require.Eventually(t, func() bool {
		return w.Iterations() > 100
	}, testJoinTimeout, time.Millisecond)

	quit.Set()
	require.NoError(t, w.Join(testJoinTimeout))
}
