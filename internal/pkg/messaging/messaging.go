// Package messaging is a broker-agnostic publish/consume client with NATS,
// NSQ, Kafka, Google Pub/Sub and in-process drivers.
//
// A Handler returning nil acknowledges the message. A non-nil error asks the
// broker to redeliver where the broker supports it. Panics count as errors.
package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/shandysiswandi/gomotor/internal/pkg/stacktrace"
)

var (
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
	ErrGroupRequired   = errors.New("messaging: consumer group is required")
	ErrClosed          = errors.New("messaging: client closed")
)

type Messaging interface {
	io.Closer
	Publish(ctx context.Context, topic string, msg Outgoing) error
	// Consume blocks until ctx is canceled or the subscription fails.
	Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error
}

type Handler func(ctx context.Context, msg Message) error

type Outgoing struct {
	Key     []byte
	Body    []byte
	Headers map[string]string
}

type Message struct {
	ID        string
	Topic     string
	Key       []byte
	Body      []byte
	Headers   map[string]string
	Timestamp time.Time
}

type consumeOptions struct {
	group       string
	concurrency int
	maxInFlight int
}

type ConsumeOption func(*consumeOptions)

// WithGroup names the competing-consumer group: the Kafka group id, the NSQ
// channel, the NATS queue group or the Pub/Sub subscription.
func WithGroup(name string) ConsumeOption {
	return func(o *consumeOptions) { o.group = name }
}

func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

func WithMaxInFlight(n int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = n }
}

func newConsumeOptions(opts []ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	co.concurrency = max(co.concurrency, 1)
	if co.maxInFlight < co.concurrency {
		co.maxInFlight = co.concurrency
	}
	return co
}

func checkConsume(ctx context.Context, topic string, h Handler, co consumeOptions) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case topic == "":
		return ErrTopicRequired
	case h == nil:
		return ErrHandlerRequired
	case co.group == "":
		return ErrGroupRequired
	}
	return nil
}

// safeHandle runs h and turns a panic into an error.
func safeHandle(ctx context.Context, driver string, h Handler, msg Message) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "topic", msg.Topic, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "topic", msg.Topic, "panic", rvr, "stack", string(stack))
		}
		err = errors.New("messaging: handler panicked")
	}()

	return h(ctx, msg)
}
