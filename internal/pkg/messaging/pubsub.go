package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var ErrPubSubProjectRequired = errors.New("messaging: pubsub project id is required")

type PubSubConfig struct {
	ProjectID     string
	ClientOptions []option.ClientOption
	// SubscriptionPrefix is prepended to the group to form the subscription
	// id, e.g. "gomotor-" + "notification-lead".
	SubscriptionPrefix string
}

// PubSub acks on success and nacks on failure, so Pub/Sub redelivers with
// the subscription's retry policy. The topic argument of Consume is only
// used for logging; the subscription already binds one.
type PubSub struct {
	client *pubsub.Client
	prefix string

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
}

func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectRequired
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub client: %w", err)
	}

	return &PubSub{
		client:     client,
		prefix:     cfg.SubscriptionPrefix,
		publishers: map[string]*pubsub.Publisher{},
	}, nil
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.publishers == nil {
		return nil, ErrClosed
	}
	pub, ok := p.publishers[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.publishers[topic] = pub
	}
	return pub, nil
}

func (p *PubSub) Publish(ctx context.Context, topic string, out Outgoing) error {
	if topic == "" {
		return ErrTopicRequired
	}
	pub, err := p.publisher(topic)
	if err != nil {
		return err
	}

	res := pub.Publish(ctx, &pubsub.Message{
		Data:        out.Body,
		Attributes:  out.Headers,
		OrderingKey: string(out.Key),
	})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

func (p *PubSub) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts)
	if err := checkConsume(ctx, topic, h, co); err != nil {
		return err
	}

	sub := p.client.Subscriber(p.prefix + co.group)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		msg := Message{
			ID:        m.ID,
			Topic:     topic,
			Key:       []byte(m.OrderingKey),
			Body:      m.Data,
			Headers:   m.Attributes,
			Timestamp: m.PublishTime,
		}
		if err := safeHandle(ctx, DriverPubSub, h, msg); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

func (p *PubSub) Close() error {
	p.mu.Lock()
	pubs := p.publishers
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}
