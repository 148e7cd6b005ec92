package pgxcasbin

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/casbin/casbin/v3/persist"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// DefaultChannel is the NOTIFY channel used when none is configured.
const DefaultChannel = "admin_casbin_policy"

// Watcher notifies other processes that the policy table changed and
// invokes the enforcer callback when another process does the same. The
// admin CLI relies on it so a running server picks up new role bindings.
type Watcher struct {
	mu       sync.RWMutex
	pool     *pgxpool.Pool
	channel  string
	localID  string
	callback func(string)
	cancel   context.CancelFunc
	done     chan struct{}
}

var _ persist.Watcher = (*Watcher)(nil)

// NewWatcher starts listening on channel until Close is called.
func NewWatcher(ctx context.Context, pool *pgxpool.Pool, channel string) (*Watcher, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	if channel == "" {
		channel = DefaultChannel
	}

	lctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w := &Watcher{
		pool:    pool,
		channel: channel,
		localID: uuid.NewString(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go w.run(lctx)

	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	b := retry.WithCappedDuration(5*time.Second, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := w.listen(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		slog.WarnContext(ctx, "casbin watcher lost its connection", "channel", w.channel, "error", err)
		return retry.RetryableError(err)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("casbin watcher stopped", "channel", w.channel, "error", err)
	}
}

func (w *Watcher) listen(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "listen "+w.channel); err != nil {
		return err
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n.Payload == w.localID {
			continue
		}

		w.mu.RLock()
		cb := w.callback
		w.mu.RUnlock()

		if cb != nil {
			cb(n.Payload)
		}
	}
}

// SetUpdateCallback is called by the enforcer when the watcher is attached.
func (w *Watcher) SetUpdateCallback(cb func(string)) error {
	w.mu.Lock()
	w.callback = cb
	w.mu.Unlock()
	return nil
}

// Update announces a policy change to every other listener.
func (w *Watcher) Update() error {
	_, err := w.pool.Exec(context.Background(), "select pg_notify($1, $2)", w.channel, w.localID)
	return err
}

func (w *Watcher) Close() {
	w.cancel()
	<-w.done
}
