package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
	// MinBytes and MaxBytes tune reader fetches. Zero keeps kafka-go defaults.
	MinBytes int
	MaxBytes int
}

// Kafka commits an offset only after its handler succeeds. A failed message
// is logged and left uncommitted, so it is re-read after a rebalance.
type Kafka struct {
	cfg KafkaConfig

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}
	return &Kafka{cfg: cfg, writers: map[string]*kafka.Writer{}}, nil
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.writers == nil {
		return nil, ErrClosed
	}
	w, ok := k.writers[topic]
	if !ok {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(k.cfg.Brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		k.writers[topic] = w
	}
	return w, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, out Outgoing) error {
	if topic == "" {
		return ErrTopicRequired
	}
	w, err := k.writer(topic)
	if err != nil {
		return err
	}

	msg := kafka.Message{Key: out.Key, Value: out.Body, Time: time.Now()}
	for key, v := range out.Headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

func (k *Kafka) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts)
	if err := checkConsume(ctx, topic, h, co); err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:       k.cfg.Brokers,
		GroupID:       co.group,
		Topic:         topic,
		Dialer:        k.cfg.Dialer,
		MinBytes:      k.cfg.MinBytes,
		MaxBytes:      k.cfg.MaxBytes,
		QueueCapacity: co.maxInFlight,
	})

	fetched := make(chan kafka.Message)
	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range fetched {
				if err := safeHandle(ctx, DriverKafka, h, kafkaMessage(m)); err != nil {
					slog.WarnContext(ctx, "kafka message handler failed, offset not committed",
						"topic", topic, "partition", m.Partition, "offset", m.Offset, "error", err)
					continue
				}
				if err := reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
					slog.ErrorContext(ctx, "failed to commit kafka offset", "topic", topic, "offset", m.Offset, "error", err)
				}
			}
		})
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		fetched <- m
	}
	close(fetched)
	wg.Wait()

	closeErr := reader.Close()
	if errors.Is(fetchErr, context.Canceled) || errors.Is(fetchErr, context.DeadlineExceeded) {
		return errors.Join(fetchErr, closeErr)
	}
	return errors.Join(fmt.Errorf("messaging: kafka consume: %w", fetchErr), closeErr)
}

func kafkaMessage(m kafka.Message) Message {
	msg := Message{
		ID:        m.Topic + "/" + strconv.Itoa(m.Partition) + "/" + strconv.FormatInt(m.Offset, 10),
		Topic:     m.Topic,
		Key:       m.Key,
		Body:      m.Value,
		Headers:   make(map[string]string, len(m.Headers)),
		Timestamp: m.Time,
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	writers := k.writers
	k.writers = nil
	k.mu.Unlock()

	var errs []error
	for _, w := range writers {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
