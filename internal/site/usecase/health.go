package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gomotor/internal/site/entity"
	"golang.org/x/sync/errgroup"
)

const defaultHealthTimeout = 2 * time.Second

type dependencyCheck struct {
	name string
	ping func(context.Context) error
}

// Health pings postgres and redis concurrently. Failures are logged and
// reported as "down"; the cause is never exposed to the caller.
func (s *Usecase) Health(ctx context.Context) entity.Health {
	ctx, span := s.startSpan(ctx, "Health")
	defer span.End()

	timeout := s.cfg.GetSecond("modules.site.health_timeout_seconds")
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checks := []dependencyCheck{
		{name: "database", ping: s.repoDB.Ping},
		{name: "cache", ping: s.repoCache.Ping},
	}

	errs := make([]error, len(checks))
	var g errgroup.Group
	for i, p := range checks {
		g.Go(func() error {
			errs[i] = p.ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	out := entity.Health{Healthy: true, Checks: make(map[string]string, len(checks))}
	for i, p := range checks {
		if errs[i] != nil {
			slog.ErrorContext(ctx, "health check failed", "check", p.name, "error", errs[i])
			out.Healthy = false
			out.Checks[p.name] = "down"
			continue
		}
		out.Checks[p.name] = "up"
	}

	return out
}
