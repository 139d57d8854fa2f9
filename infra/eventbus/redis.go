package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/events"
	"github.com/amirasaad/opsledger/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisEventBus publishes events to a Redis stream and dispatches the events read back
// from it to local handlers. Every process reads with its own consumer group, so each
// process sees every event.
type RedisEventBus struct {
	client        *redis.Client
	stream        string
	group         string
	consumer      string
	block         time.Duration
	typeFactories map[string]func() events.Event
	logger        *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]eventbus.HandlerFunc
	start    sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWithRedis creates a new Redis-backed event bus.
// url: Redis connection URL (e.g., "redis://localhost:6379")
// stream: Name of the Redis stream to use
// group: Consumer group of this process
func NewWithRedis(url, stream, group string, types map[string]func() events.Event, logger *slog.Logger) (*RedisEventBus, error) {
	if url == "" || stream == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: url, stream, and group are required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}

	// "$" so that a new group only sees events published from now on.
	if err := client.XGroupCreateMkStream(ctx, stream, group, "$").Err(); err != nil && !isBusyGroup(err) {
		return nil, fmt.Errorf("redis event bus: create group: %w", err)
	}

	return &RedisEventBus{
		client:        client,
		stream:        stream,
		group:         group,
		consumer:      fmt.Sprintf("consumer-%d", time.Now().UnixNano()),
		block:         time.Second,
		typeFactories: types,
		logger:        logger.With("component", "redis-event-bus"),
		handlers:      make(map[string][]eventbus.HandlerFunc),
		done:          make(chan struct{}),
	}, nil
}

func isBusyGroup(err error) bool {
	return strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// Emit publishes an event to the Redis stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: marshal failed: %w", err)
	}

	envBytes, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return fmt.Errorf("redis event bus: envelope marshal failed: %w", err)
	}

	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{"event": string(envBytes)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register adds a local handler and starts the stream reader on first use.
func (b *RedisEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()

	b.start.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		go b.consume(ctx)
	})
	b.logger.Info("handler registered", "event_type", eventType, "consumer", b.consumer)
}

// Close stops the reader and closes the Redis client.
func (b *RedisEventBus) Close() error {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
	return b.client.Close()
}

func (b *RedisEventBus) consume(ctx context.Context) {
	defer close(b.done)
	for {
		res, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: b.consumer,
			Streams:  []string{b.stream, ">"},
			Count:    16,
			Block:    b.block,
		}).Result()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "consumer", b.consumer)
				time.Sleep(100 * time.Millisecond)
			}
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				b.handle(ctx, msg)
				if err := b.client.XAck(ctx, b.stream, b.group, msg.ID).Err(); err != nil {
					b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
				}
			}
		}
	}
}

func (b *RedisEventBus) handle(ctx context.Context, msg redis.XMessage) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(ctx, msg.Values)
		return
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		b.logger.Error("failed to unmarshal envelope", "error", err)
		b.pushToDLQ(ctx, msg.Values)
		return
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[env.Type]...)
	b.mu.RUnlock()
	if len(handlers) == 0 {
		return
	}

	constructor, ok := b.typeFactories[env.Type]
	if !ok {
		b.logger.Error("unknown event type", "event_type", env.Type)
		b.pushToDLQ(ctx, msg.Values)
		return
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		b.logger.Error("failed to unmarshal payload", "error", err, "event_type", env.Type)
		b.pushToDLQ(ctx, msg.Values)
		return
	}

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("handler panic recovered", "panic", r, "event_type", env.Type)
					b.pushToDLQ(ctx, msg.Values)
				}
			}()
			if err := handler(ctx, evt); err != nil {
				b.logger.Error("handler error", "error", err, "event_type", env.Type)
				b.pushToDLQ(ctx, msg.Values)
			}
		}()
	}
}

// pushToDLQ pushes the raw event (msg.Values) to a DLQ Redis stream for inspection or reprocessing.
func (b *RedisEventBus) pushToDLQ(ctx context.Context, values map[string]any) {
	dlqStream := b.stream + "-DLQ"
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: dlqStream,
		Values: values,
	}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlqStream)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlqStream)
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
