package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type ConsumeLeadCreatedInput struct {
	LeadID   int64  `validate:"required,gt=0"`
	Type     string `validate:"required,oneof=buy sell"`
	FullName string `validate:"required,max=120"`
	Email    string `validate:"required,email"`
	Phone    string
	Message  string
	Subject  string
	Details  []event.Pair `validate:"-"`
}

// ConsumeLeadCreated mails the sales inbox a summary and the customer an
// acknowledgement. Failures are recorded per delivery and never redelivered,
// so a customer is not mailed twice because the inbox send failed.
func (s *Usecase) ConsumeLeadCreated(ctx context.Context, in ConsumeLeadCreatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeLeadCreated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid lead created payload", "lead_id", in.LeadID, "error", err)
		return nil
	}

	ref := "#" + strconv.FormatInt(in.LeadID, 10)

	if inbox := strings.TrimSpace(s.cfg.GetString("modules.notification.sales_inbox")); inbox != "" {
		subject := in.Subject
		if subject == "" {
			subject = "New " + in.Type + " lead from " + in.FullName
		}
		s.send(ctx, viewLeadSales, entity.Email{
			Event:   entity.EventLeadSales,
			To:      inbox,
			Subject: "[Lead " + ref + "] " + subject,
		}, in)
	} else {
		slog.WarnContext(ctx, "sales inbox is not configured, skipping lead summary", "lead_id", in.LeadID)
	}

	subject := "We received your enquiry " + ref
	if in.Type == event.LeadTypeSell {
		subject = "We received your car details " + ref
	}
	s.send(ctx, viewLeadCustomer, entity.Email{
		Event:   entity.EventLeadCustomer,
		To:      in.Email,
		Subject: subject,
	}, in)

	return nil
}

// send renders view into e and delivers it. Errors are logged only.
func (s *Usecase) send(ctx context.Context, view string, e entity.Email, data any) {
	html, err := s.views.render(view, viewData{
		Subject: e.Subject,
		Site:    s.site(),
		Year:    s.clock.Now().Year(),
		Data:    data,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email", "view", view, "error", err)
		return
	}
	e.HTML = html

	if err := s.deliver(ctx, e); err != nil {
		slog.ErrorContext(ctx, "email not delivered", "event", e.Event, "error", err)
	}
}
