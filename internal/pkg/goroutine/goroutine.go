// Package goroutine runs background jobs (message consumers, cache
// warmers) under a concurrency cap and collects their errors for shutdown.
package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/gomotor/internal/pkg/stacktrace"
)

// DefaultLimit applies when NewManager receives a non-positive limit.
const DefaultLimit = 64

// ErrPanic wraps a recovered panic value.
var ErrPanic = errors.New("goroutine: panic")

type Manager struct {
	wg   sync.WaitGroup
	slot chan struct{}

	mu     sync.Mutex
	errs   []error
	closed bool
}

func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Manager{slot: make(chan struct{}, limit)}
}

// Go starts fn unless the manager is closed or every slot is taken, in
// which case it reports false and logs why.
func (m *Manager) Go(ctx context.Context, fn func(ctx context.Context) error) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		slog.WarnContext(ctx, "goroutine manager closed, job dropped")
		return false
	}

	select {
	case m.slot <- struct{}{}:
	default:
		m.mu.Unlock()
		slog.WarnContext(ctx, "goroutine limit reached, job dropped", "limit", cap(m.slot))
		return false
	}

	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer func() { <-m.slot }()

		if err := m.run(ctx, fn); err != nil {
			m.mu.Lock()
			m.errs = append(m.errs, err)
			m.mu.Unlock()
		}
	}()

	return true
}

func (m *Manager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in background job", "panic", rvr, "stack", stacktrace.InternalPaths(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, rvr)
		}
	}()

	if ctx.Err() != nil {
		return nil
	}

	return fn(ctx)
}

// Wait stops accepting jobs, blocks until running ones return and joins
// their errors.
func (m *Manager) Wait() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
