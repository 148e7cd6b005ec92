package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrNATSURLRequired = errors.New("messaging: nats url is required")

type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS uses core subjects. There is no redelivery: a failed handler is
// logged and the message dropped.
type NATS struct {
	conn *nats.Conn
}

func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}
	return &NATS{conn: conn}, nil
}

func (n *NATS) Publish(ctx context.Context, topic string, out Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	msg := nats.NewMsg(topic)
	msg.Data = out.Body
	for k, v := range out.Headers {
		msg.Header.Set(k, v)
	}

	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	return n.conn.FlushWithContext(ctx)
}

func (n *NATS) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts)
	if err := checkConsume(ctx, topic, h, co); err != nil {
		return err
	}

	queue := make(chan *nats.Msg, co.maxInFlight)
	sub, err := n.conn.ChanQueueSubscribe(topic, co.group, queue)
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case m := <-queue:
					msg := Message{Topic: m.Subject, Body: m.Data, Headers: map[string]string{}, Timestamp: time.Now()}
					for k := range m.Header {
						msg.Headers[k] = m.Header.Get(k)
					}
					if err := safeHandle(ctx, DriverNATS, h, msg); err != nil {
						slog.WarnContext(ctx, "nats message handler failed, message dropped", "topic", topic, "error", err)
					}
				}
			}
		})
	}

	<-ctx.Done()
	err = sub.Drain()
	wg.Wait()
	return errors.Join(ctx.Err(), err)
}

func (n *NATS) Close() error {
	err := n.conn.Drain()
	n.conn.Close()
	return err
}
