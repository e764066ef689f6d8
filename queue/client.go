package queue

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client defines the interface for interacting with Redis-based worker
// queues.
type Client interface {
	// Push adds an item to the end of a queue (LPUSH).
	Push(ctx context.Context, queue string, item Item) error

	// TryPop removes and returns an item from the front of a queue
	// without blocking (RPOP). It returns (nil, nil) when the queue is
	// empty, which is the shape a polling worker loop wants.
	TryPop(ctx context.Context, queue string) (*Item, error)

	// Pop removes and returns an item from the front of a queue (BRPOP).
	// Blocks until an item is available or the context is cancelled.
	Pop(ctx context.Context, queue string) (*Item, error)

	// Publish sends a result to a pub/sub channel.
	Publish(ctx context.Context, channel string, result Result) error

	// Subscribe creates a subscription to a pub/sub channel. The returned
	// channel receives results until the context is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan Result, error)

	// Heartbeat updates the health key for a worker with a 30s TTL.
	Heartbeat(ctx context.Context, worker string) error

	// Close closes the Redis connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection
	// establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisClient implements the Client interface using go-redis/v9.
type RedisClient struct {
	client *redis.Client
}

var _ Client = (*RedisClient)(nil)

// NewRedisClient creates a new Redis queue client with the given options.
func NewRedisClient(opts RedisOptions) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Push adds an item to the end of a queue.
func (c *RedisClient) Push(ctx context.Context, queue string, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if err := c.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", queue, err)
	}

	return nil
}

// TryPop removes and returns an item from the front of a queue without
// blocking. Returns (nil, nil) when the queue is empty.
func (c *RedisClient) TryPop(ctx context.Context, queue string) (*Item, error) {
	raw, err := c.client.RPop(ctx, queue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", queue, err)
	}

	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// Pop removes and returns an item from the front of a queue, blocking
// until an item is available or the context is cancelled.
func (c *RedisClient) Pop(ctx context.Context, queue string) (*Item, error) {
	// BRPOP returns [queue_name, value]
	result, err := c.client.BRPop(ctx, 0, queue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", queue, err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP result length: %d", len(result))
	}

	var item Item
	if err := json.Unmarshal([]byte(result[1]), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// Publish sends a result to a pub/sub channel.
func (c *RedisClient) Publish(ctx context.Context, channel string, result Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe creates a subscription to a pub/sub channel.
func (c *RedisClient) Subscribe(ctx context.Context, channel string) (<-chan Result, error) {
	pubsub := c.client.Subscribe(ctx, channel)

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	resultChan := make(chan Result)

	go func() {
		defer close(resultChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var result Result
				if err := json.Unmarshal([]byte(msg.Payload), &result); err != nil {
					// Skip malformed messages but keep the subscription alive.
					continue
				}

				select {
				case resultChan <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultChan, nil
}

// Heartbeat updates the health key for a worker with a 30s TTL.
func (c *RedisClient) Heartbeat(ctx context.Context, worker string) error {
	if err := c.client.Set(ctx, heartbeatKey(worker), "ok", 30*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to set heartbeat for worker %s: %w", worker, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}
