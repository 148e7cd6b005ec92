// Package idempotency guards one-shot operations with a redis key, so a
// repeated submission inside the window is rejected instead of executed.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrDuplicate = errors.New("idempotency: operation already performed")

type Idempotency interface {
	// Once runs fn unless key was claimed within ttl. A failing fn releases
	// the key so the caller may retry.
	Once(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

type Redis struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &Redis{client: client, prefix: prefix}
}

const (
	statePending = "pending"
	stateDone    = "done"
)

func (r *Redis) Once(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	fk := r.prefix + key

	claimed, err := r.client.SetNX(ctx, fk, statePending, ttl).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return ErrDuplicate
	}

	if err := fn(ctx); err != nil {
		// Release with a fresh context so a canceled request still frees the key.
		if delErr := r.client.Del(context.WithoutCancel(ctx), fk).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return r.client.Set(ctx, fk, stateDone, redis.KeepTTL).Err()
}
