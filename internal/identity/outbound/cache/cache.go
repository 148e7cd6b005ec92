package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

const (
	keyLoginFailures = "identity:login:fail:"
	keyPendingTOTP   = "identity:mfa:setup:"
)

// Cache holds the short-lived identity state: login failure counters and
// TOTP setups that were started but not confirmed.
type Cache struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func New(client redis.UniversalClient, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("identity.outbound.cache").Start(ctx, name)
}

func failureKey(email string) string {
	return keyLoginFailures + strings.ToLower(strings.TrimSpace(email))
}

func (c *Cache) LoginFailures(ctx context.Context, email string) (int64, error) {
	ctx, span := c.startSpan(ctx, "LoginFailures")
	defer span.End()

	n, err := c.client.Get(ctx, failureKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// RecordLoginFailure counts a failure. The window starts at the first
// failure and is not extended by later ones.
func (c *Cache) RecordLoginFailure(ctx context.Context, email string, window time.Duration) (int64, error) {
	ctx, span := c.startSpan(ctx, "RecordLoginFailure")
	defer span.End()

	key := failureKey(email)
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}

	return n, nil
}

func (c *Cache) ResetLoginFailures(ctx context.Context, email string) error {
	ctx, span := c.startSpan(ctx, "ResetLoginFailures")
	defer span.End()

	return c.client.Del(ctx, failureKey(email)).Err()
}

func pendingKey(adminID int64) string {
	return keyPendingTOTP + strconv.FormatInt(adminID, 10)
}

// SetPendingTOTP replaces any earlier setup of the same admin.
func (c *Cache) SetPendingTOTP(ctx context.Context, adminID int64, sealed []byte, ttl time.Duration) error {
	ctx, span := c.startSpan(ctx, "SetPendingTOTP")
	defer span.End()

	return c.client.Set(ctx, pendingKey(adminID), sealed, ttl).Err()
}

// GetPendingTOTP returns goerror.ErrNotFound when no setup is running.
func (c *Cache) GetPendingTOTP(ctx context.Context, adminID int64) ([]byte, error) {
	ctx, span := c.startSpan(ctx, "GetPendingTOTP")
	defer span.End()

	raw, err := c.client.Get(ctx, pendingKey(adminID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	return raw, err
}

func (c *Cache) DeletePendingTOTP(ctx context.Context, adminID int64) error {
	ctx, span := c.startSpan(ctx, "DeletePendingTOTP")
	defer span.End()

	return c.client.Del(ctx, pendingKey(adminID)).Err()
}
