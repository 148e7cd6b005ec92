package messaging

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverNATS   = "nats"
	DriverNSQ    = "nsq"
	DriverKafka  = "kafka"
	DriverPubSub = "google-pubsub"
	DriverMemory = "memory"
)

type FactoryOptions struct {
	NATS   NATSConfig
	NSQ    NSQConfig
	Kafka  KafkaConfig
	PubSub PubSubConfig
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverPubSub:
		return NewPubSub(ctx, opts.PubSub)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("messaging: unknown driver %q", driver)
	}
}
