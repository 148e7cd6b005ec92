package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
)

type Cache struct {
	client redis.UniversalClient
	ins    instrument.Instrumentation
}

func New(client redis.UniversalClient, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) Ping(ctx context.Context) error {
	ctx, span := c.ins.Tracer("site.outbound.cache").Start(ctx, "Ping")
	defer span.End()

	return c.client.Ping(ctx).Err()
}
