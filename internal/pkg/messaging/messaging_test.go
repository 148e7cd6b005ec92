package messaging

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consumeAsync(t *testing.T, m *Memory, topic, group string, h Handler) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.Consume(ctx, topic, h, WithGroup(group), WithConcurrency(2))
	}()
	t.Cleanup(func() { cancel(); <-done })

	require.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		_, ok := m.groups[topic][group]
		return ok
	}, time.Second, 5*time.Millisecond)
	return cancel
}

func TestMemoryFanOutPerGroup(t *testing.T) {
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	var mu sync.Mutex
	got := map[string][]Message{}
	record := func(group string) Handler {
		return func(_ context.Context, msg Message) error {
			mu.Lock()
			defer mu.Unlock()
			got[group] = append(got[group], msg)
			return nil
		}
	}

	consumeAsync(t, m, "lead.created", "mail", record("mail"))
	consumeAsync(t, m, "lead.created", "audit", record("audit"))

	err := m.Publish(context.Background(), "lead.created", Outgoing{
		Body:    []byte(`{"id":1}`),
		Headers: map[string]string{"cID": "abc"},
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got["mail"]) == 1 && len(got["audit"]) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "abc", got["mail"][0].Headers["cID"])
	assert.Equal(t, "lead.created", got["mail"][0].Topic)
	assert.JSONEq(t, `{"id":1}`, string(got["audit"][0].Body))
}

func TestMemoryRetriesFailedHandler(t *testing.T) {
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	var calls atomic.Int32
	consumeAsync(t, m, "t", "g", func(context.Context, Message) error {
		if calls.Add(1) == 1 {
			panic("first try")
		}
		return errors.New("still failing")
	})

	require.NoError(t, m.Publish(context.Background(), "t", Outgoing{Body: []byte("x")}))
	assert.Eventually(t, func() bool { return calls.Load() == memoryMaxAttempts }, time.Second, 5*time.Millisecond)
}

func TestConsumeValidation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	noop := func(context.Context, Message) error { return nil }

	assert.ErrorIs(t, m.Consume(ctx, "", noop, WithGroup("g")), ErrTopicRequired)
	assert.ErrorIs(t, m.Consume(ctx, "t", nil, WithGroup("g")), ErrHandlerRequired)
	assert.ErrorIs(t, m.Consume(ctx, "t", noop), ErrGroupRequired)

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Publish(ctx, "t", Outgoing{}), ErrClosed)
}

func TestNewFromDriver(t *testing.T) {
	got, err := NewFromDriver(context.Background(), " Memory ", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, got)

	_, err = NewFromDriver(context.Background(), "carrier-pigeon", FactoryOptions{})
	assert.Error(t, err)

	_, err = NewFromDriver(context.Background(), DriverKafka, FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)
}
