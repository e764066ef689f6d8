package signal

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const (
	defaultEtcdNamespace  = "workersz"
	defaultEtcdDialTimeout = 5 * time.Second
	defaultEtcdOpTimeout  = 5 * time.Second
)

// EtcdConfig configures an etcd-backed signal.
type EtcdConfig struct {
	// Endpoints is the list of etcd endpoints (e.g., ["localhost:2379"]).
	// Required unless Client is provided.
	Endpoints []string

	// Client is an existing etcd client to reuse. When set, Endpoints and
	// DialTimeout are ignored and the signal does not close the client.
	Client *clientv3.Client

	// Namespace is the key prefix under which signal keys are stored.
	// Defaults to "workersz".
	Namespace string

	// Name is the signal name; the backing key is "<namespace>/signals/<name>".
	// Required.
	Name string

	// DialTimeout is the maximum time to wait for connection establishment.
	// Defaults to 5s.
	DialTimeout time.Duration

	// OpTimeout bounds each Set/Clear/IsSet round trip. Defaults to 5s.
	OpTimeout time.Duration

	// Logger is the structured logger for transport errors. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Etcd is a distributed Signal backed by a single etcd key: the signal is
// set while the key exists and unset while it does not. Set writes the
// key, Clear deletes it, and Wait watches for a put.
//
// Because every worker in the fleet observes the same key, an Etcd signal
// is a natural carrier for a cross-process quit broadcast.
//
// The Signal interface carries no errors, so transport failures are
// logged and retained; the most recent one is available from Err. A
// failed Set/Clear leaves the remote state unchanged, and IsSet reports
// false when the state cannot be read.
type Etcd struct {
	client     *clientv3.Client
	key        string
	opTimeout  time.Duration
	logger     *slog.Logger
	ownsClient bool

	mu      sync.Mutex
	lastErr error
}

// NewEtcd creates a distributed signal from the provided configuration.
// The caller must Close the signal when no longer needed.
func NewEtcd(cfg EtcdConfig) (*Etcd, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("signal name cannot be empty")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultEtcdNamespace
	}

	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = defaultEtcdOpTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := cfg.Client
	ownsClient := false
	if client == nil {
		if len(cfg.Endpoints) == 0 {
			return nil, fmt.Errorf("signal endpoints cannot be empty")
		}

		dialTimeout := cfg.DialTimeout
		if dialTimeout <= 0 {
			dialTimeout = defaultEtcdDialTimeout
		}

		var err error
		client, err = clientv3.New(clientv3.Config{
			Endpoints:   cfg.Endpoints,
			DialTimeout: dialTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to etcd: %w", err)
		}
		ownsClient = true
	}

	return &Etcd{
		client:     client,
		key:        path.Join(namespace, "signals", cfg.Name),
		opTimeout:  opTimeout,
		logger:     logger.With("signal", cfg.Name),
		ownsClient: ownsClient,
	}, nil
}

// Key returns the etcd key backing this signal.
func (e *Etcd) Key() string {
	return e.key
}

// Set writes the backing key, marking the signal set for every watcher.
func (e *Etcd) Set() {
	ctx, cancel := context.WithTimeout(context.Background(), e.opTimeout)
	defer cancel()

	if _, err := e.client.Put(ctx, e.key, "1"); err != nil {
		e.record("set", err)
	}
}

// Clear deletes the backing key. Clearing an absent key is a no-op.
func (e *Etcd) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), e.opTimeout)
	defer cancel()

	if _, err := e.client.Delete(ctx, e.key); err != nil {
		e.record("clear", err)
	}
}

// IsSet reports whether the backing key currently exists. It reports
// false when the key cannot be read; the read error is retained.
func (e *Etcd) IsSet() bool {
	ctx, cancel := context.WithTimeout(context.Background(), e.opTimeout)
	defer cancel()

	resp, err := e.client.Get(ctx, e.key)
	if err != nil {
		e.record("get", err)
		return false
	}
	return resp.Count > 0
}

// Wait blocks until the backing key is written or the timeout elapses.
// A timeout <= 0 waits indefinitely. It returns whether the signal became
// set.
func (e *Etcd) Wait(timeout time.Duration) bool {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return e.WaitContext(ctx)
}

// WaitContext blocks until the backing key is written or the context is
// done. It returns whether the signal became set.
func (e *Etcd) WaitContext(ctx context.Context) bool {
	// Open the watch before the existence check so a put between the two
	// is not missed.
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchChan := e.client.Watch(watchCtx, e.key)

	if e.IsSet() {
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case resp, ok := <-watchChan:
			if !ok {
				return false
			}
			if err := resp.Err(); err != nil {
				e.record("watch", err)
				return false
			}
			for _, ev := range resp.Events {
				if ev.Type == clientv3.EventTypePut {
					return true
				}
			}
		}
	}
}

// Err returns the most recent transport error observed by this signal,
// or nil if none occurred.
func (e *Etcd) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Close releases the underlying etcd client if this signal owns it.
func (e *Etcd) Close() error {
	if !e.ownsClient {
		return nil
	}
	return e.client.Close()
}

func (e *Etcd) record(op string, err error) {
	e.logger.Warn("etcd signal operation failed", "op", op, "key", e.key, "error", err)

	e.mu.Lock()
	e.lastErr = fmt.Errorf("etcd signal %s %s: %w", op, e.key, err)
	e.mu.Unlock()
}
