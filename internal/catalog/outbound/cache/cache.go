package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "catalog:vehicle:"

// Cache keeps public vehicle detail payloads keyed by slug.
type Cache struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func New(client redis.UniversalClient, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("catalog.outbound.cache").Start(ctx, name)
}

// GetVehicle returns goerror.ErrNotFound on a miss.
func (c *Cache) GetVehicle(ctx context.Context, slug string) (*entity.Vehicle, error) {
	ctx, span := c.startSpan(ctx, "GetVehicle")
	defer span.End()

	raw, err := c.client.Get(ctx, keyPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var v entity.Vehicle
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	return &v, nil
}

func (c *Cache) SetVehicle(ctx context.Context, v entity.Vehicle, ttl time.Duration) error {
	ctx, span := c.startSpan(ctx, "SetVehicle")
	defer span.End()

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+v.Slug, raw, ttl).Err()
}

func (c *Cache) DeleteVehicle(ctx context.Context, slug string) error {
	ctx, span := c.startSpan(ctx, "DeleteVehicle")
	defer span.End()

	return c.client.Del(ctx, keyPrefix+slug).Err()
}
