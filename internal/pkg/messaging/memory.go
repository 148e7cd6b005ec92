package messaging

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Memory delivers in process. Every group subscribed to a topic gets each
// message once; a failed handler gets the message again up to maxAttempts.
type Memory struct {
	mu     sync.RWMutex
	groups map[string]map[string]chan Message
	closed bool
	seq    atomic.Uint64
}

const memoryMaxAttempts = 3

func NewMemory() *Memory {
	return &Memory{groups: map[string]map[string]chan Message{}}
}

func (m *Memory) Publish(ctx context.Context, topic string, out Outgoing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}

	msg := Message{
		ID:        strconv.FormatUint(m.seq.Add(1), 10),
		Topic:     topic,
		Key:       out.Key,
		Body:      out.Body,
		Headers:   out.Headers,
		Timestamp: time.Now(),
	}
	for _, ch := range m.groups[topic] {
		select {
		case ch <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Memory) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts)
	if err := checkConsume(ctx, topic, h, co); err != nil {
		return err
	}

	ch, err := m.subscribe(topic, co)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-ch:
					if !ok {
						return
					}
					for range memoryMaxAttempts {
						if safeHandle(ctx, DriverMemory, h, msg) == nil {
							break
						}
					}
				}
			}
		})
	}

	wg.Wait()
	return ctx.Err()
}

func (m *Memory) subscribe(topic string, co consumeOptions) (chan Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.groups[topic] == nil {
		m.groups[topic] = map[string]chan Message{}
	}
	ch, ok := m.groups[topic][co.group]
	if !ok {
		ch = make(chan Message, co.maxInFlight)
		m.groups[topic][co.group] = ch
	}
	return ch, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	for _, groups := range m.groups {
		for _, ch := range groups {
			close(ch)
		}
	}
	return nil
}
