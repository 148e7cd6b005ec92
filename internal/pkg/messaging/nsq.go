package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")
	ErrNSQConsumerAddrRequired = errors.New("messaging: nsq nsqd or lookupd address is required")
)

type NSQConfig struct {
	ProducerAddr   string
	NSQDAddrs      []string
	LookupdAddrs   []string
	ProducerConfig *nsq.Config
	ConsumerConfig *nsq.Config
}

// nsqEnvelope carries headers, which NSQ messages lack.
type nsqEnvelope struct {
	Key     []byte            `json:"key,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body"`
}

// NSQ requeues a message when the handler fails, up to the consumer's
// MaxAttempts.
type NSQ struct {
	producer *nsq.Producer
	cfg      NSQConfig
}

func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.ProducerAddr == "" {
		return nil, ErrNSQProducerAddrRequired
	}
	if cfg.ProducerConfig == nil {
		cfg.ProducerConfig = nsq.NewConfig()
	}
	if cfg.ConsumerConfig == nil {
		cfg.ConsumerConfig = nsq.NewConfig()
	}

	p, err := nsq.NewProducer(cfg.ProducerAddr, cfg.ProducerConfig)
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq producer: %w", err)
	}
	p.SetLoggerLevel(nsq.LogLevelError)

	return &NSQ{producer: p, cfg: cfg}, nil
}

func (n *NSQ) Publish(ctx context.Context, topic string, out Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	body, err := json.Marshal(nsqEnvelope{Key: out.Key, Headers: out.Headers, Body: out.Body})
	if err != nil {
		return err
	}
	if err := n.producer.Publish(topic, body); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}
	return nil
}

func (n *NSQ) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts)
	if err := checkConsume(ctx, topic, h, co); err != nil {
		return err
	}
	if len(n.cfg.NSQDAddrs) == 0 && len(n.cfg.LookupdAddrs) == 0 {
		return ErrNSQConsumerAddrRequired
	}

	ccfg := *n.cfg.ConsumerConfig
	ccfg.MaxInFlight = co.maxInFlight

	consumer, err := nsq.NewConsumer(topic, co.group, &ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		msg := Message{
			ID:        string(m.ID[:]),
			Topic:     topic,
			Timestamp: time.Unix(0, m.Timestamp),
		}

		var env nsqEnvelope
		if err := json.Unmarshal(m.Body, &env); err != nil || env.Body == nil {
			msg.Body = m.Body
		} else {
			msg.Key, msg.Headers, msg.Body = env.Key, env.Headers, env.Body
		}

		return safeHandle(ctx, DriverNSQ, h, msg)
	}), co.concurrency)

	if len(n.cfg.LookupdAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.cfg.LookupdAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.cfg.NSQDAddrs)
	}
	if err != nil {
		consumer.Stop()
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.StopChan
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) Close() error {
	n.producer.Stop()
	return nil
}
