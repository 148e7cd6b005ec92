package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/notification/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) withCorrelationID(ctx context.Context, headers map[string]string) context.Context {
	if cid := headers[event.HeaderCorrelationID]; cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) LeadCreated(ctx context.Context, msg messaging.Message) error {
	ctx = h.withCorrelationID(ctx, msg.Headers)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "LeadCreated")
	defer span.End()

	var payload event.LeadCreatedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse lead created message", "msg_id", msg.ID, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: lead created", "msg_id", msg.ID, "lead_id", payload.LeadID, "type", payload.Type)

	return h.uc.ConsumeLeadCreated(ctx, usecase.ConsumeLeadCreatedInput{
		LeadID:   payload.LeadID,
		Type:     payload.Type,
		FullName: payload.FullName,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Message:  payload.Message,
		Subject:  payload.Subject,
		Details:  payload.Details,
	})
}

func (h *MQHandler) AdminSecurity(ctx context.Context, msg messaging.Message) error {
	ctx = h.withCorrelationID(ctx, msg.Headers)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AdminSecurity")
	defer span.End()

	var payload event.AdminSecurityMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse admin security message", "msg_id", msg.ID, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: admin security", "msg_id", msg.ID, "admin_id", payload.AdminID, "change", payload.Change)

	return h.uc.ConsumeAdminSecurity(ctx, usecase.ConsumeAdminSecurityInput{
		AdminID:    payload.AdminID,
		Email:      payload.Email,
		FullName:   payload.FullName,
		Change:     payload.Change,
		IP:         payload.IP,
		UserAgent:  payload.UserAgent,
		OccurredAt: payload.OccurredAt,
	})
}
