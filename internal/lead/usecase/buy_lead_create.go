package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

var errLeadDuplicate = goerror.NewBusiness("Lead already submitted", goerror.CodeConflict)

type CreateBuyLeadInput struct {
	VehicleID        int64  `validate:"gte=0"`
	FullName         string `validate:"required,min=2,max=120,personname"`
	Email            string `validate:"required,email,max=254"`
	Phone            string `validate:"required,phone"`
	PreferredContact string `validate:"omitempty,oneof=email phone whatsapp"`
	Message          string `validate:"max=2000"`
	WantsFinancing   bool
	HasTradeIn       bool
	Source           string `validate:"max=500"`
}

type CreateLeadOutput struct {
	ID int64
}

func (s *Usecase) CreateBuyLead(ctx context.Context, in CreateBuyLeadInput) (*CreateLeadOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateBuyLead")
	defer span.End()

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var vehicle *entity.VehicleRef
	if in.VehicleID > 0 {
		ref, err := s.repoDB.GetVehicleRef(ctx, in.VehicleID, leadableStatuses)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewInvalidInput(nil, "vehicle_id", "vehicle is not available")
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get vehicle ref", "vehicle_id", in.VehicleID, "error", err)
			return nil, goerror.NewServer(err)
		}
		vehicle = ref
	}

	key, err := s.fingerprint(event.LeadTypeBuy, in.Email, strconv.FormatInt(in.VehicleID, 10))
	if err != nil {
		slog.ErrorContext(ctx, "failed to fingerprint lead", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	lead := entity.BuyLead{
		ID:               s.uid.Generate(),
		VehicleID:        in.VehicleID,
		FullName:         in.FullName,
		Email:            in.Email,
		Phone:            in.Phone,
		PreferredContact: entity.PreferredContact(in.PreferredContact),
		Message:          strings.TrimSpace(in.Message),
		WantsFinancing:   in.WantsFinancing,
		HasTradeIn:       in.HasTradeIn,
		Status:           entity.StatusNew,
		Source:           strings.TrimSpace(in.Source),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if lead.PreferredContact == "" {
		lead.PreferredContact = entity.ContactEmail
	}

	err = s.idempotency.Once(ctx, key, s.dedupeWindow(), func(ctx context.Context) error {
		return s.repoDB.CreateBuyLead(ctx, lead)
	})
	if errors.Is(err, idempotency.ErrDuplicate) {
		return nil, errLeadDuplicate
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create buy lead", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "buy lead created", "lead_id", lead.ID, "vehicle_id", lead.VehicleID)
	s.publish(ctx, buyLeadMessage(lead, vehicle))

	return &CreateLeadOutput{ID: lead.ID}, nil
}

func buyLeadMessage(l entity.BuyLead, v *entity.VehicleRef) event.LeadCreatedMessage {
	subject := "General enquiry"
	details := []event.Pair{{Label: "Preferred contact", Value: string(l.PreferredContact)}}
	if v != nil {
		subject = v.Title
		details = append(details, event.Pair{Label: "Vehicle", Value: v.Title + " (" + v.Slug + ")"})
	}
	details = append(details,
		event.Pair{Label: "Financing", Value: yesNo(l.WantsFinancing)},
		event.Pair{Label: "Trade-in", Value: yesNo(l.HasTradeIn)},
	)
	if l.Source != "" {
		details = append(details, event.Pair{Label: "Source", Value: l.Source})
	}

	return event.LeadCreatedMessage{
		LeadID:    l.ID,
		Type:      event.LeadTypeBuy,
		FullName:  l.FullName,
		Email:     l.Email,
		Phone:     l.Phone,
		Message:   l.Message,
		Subject:   subject,
		Details:   details,
		CreatedAt: l.CreatedAt.Unix(),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
