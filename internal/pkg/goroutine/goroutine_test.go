package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerCollectsErrors(t *testing.T) {
	m := NewManager(4)
	boom := errors.New("boom")

	var ran atomic.Int32
	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return nil
	}))
	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return boom
	}))

	err := m.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), ran.Load())
}

func TestManagerRecoversPanic(t *testing.T) {
	m := NewManager(1)
	m.Go(context.Background(), func(context.Context) error { panic("bad") })

	assert.ErrorIs(t, m.Wait(), ErrPanic)
}

func TestManagerRejectsWhenFull(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	assert.True(t, m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))

	close(release)
	assert.NoError(t, m.Wait())
}

func TestManagerRejectsAfterWait(t *testing.T) {
	m := NewManager(1)
	assert.NoError(t, m.Wait())
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	m.Go(ctx, func(context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, m.Wait())
	assert.False(t, called)
}
