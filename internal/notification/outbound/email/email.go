package email

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client  mail.Mail
	replyTo string
	ins     instrument.Instrumentation
}

// New wraps the mail driver. replyTo may be empty.
func New(client mail.Mail, replyTo string, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, replyTo: replyTo, ins: ins}
}

func (m *Mail) Send(ctx context.Context, e entity.Email) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	span.SetAttributes(attribute.String("mail.event", e.Event))

	if err := m.client.Send(ctx, mail.Message{
		ReplyTo:  m.replyTo,
		To:       []string{e.To},
		Subject:  e.Subject,
		TextBody: e.Text,
		HTMLBody: e.HTML,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
