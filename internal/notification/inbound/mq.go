package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

// RegisterMQConsumer starts one consumer per enabled name in
// modules.notification.consumer_names. An empty list starts none.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	h := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := max(cfg.GetInt("modules.notification.consumer_concurrency"), 1)

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.LeadCreatedConsumerNotification,
			topic:   event.LeadCreatedDestination,
			handler: h.LeadCreated,
		},
		{
			name:    event.AdminSecurityConsumerNotification,
			topic:   event.AdminSecurityDestination,
			handler: h.AdminSecurity,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enabled, consumer.name) {
			continue
		}

		started := routine.Go(ctx, func(ctx context.Context) error {
			slog.InfoContext(ctx, "running consumer", "consumer", consumer.name, "topic", consumer.topic)
			return messenger.Consume(ctx,
				consumer.topic,
				consumer.handler,
				messaging.WithGroup(consumer.name),
				messaging.WithConcurrency(concurrency),
				messaging.WithMaxInFlight(concurrency*2),
			)
		})
		if !started {
			slog.ErrorContext(ctx, "consumer not started", "consumer", consumer.name)
		}
	}
}
