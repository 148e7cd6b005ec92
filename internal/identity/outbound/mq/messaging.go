package mq

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAdminSecurity(ctx context.Context, msg event.AdminSecurityMessage) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishAdminSecurity")
	defer span.End()

	if err := event.Publish(ctx, m.client, event.AdminSecurityDestination, msg.AdminID, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
