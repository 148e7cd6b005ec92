package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomotor/internal/pkg/valueobject"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

const defaultMaxPhotos = 10

type CreateSellLeadInput struct {
	FullName    string   `validate:"required,min=2,max=120,personname"`
	Email       string   `validate:"required,email,max=254"`
	Phone       string   `validate:"required,phone"`
	Make        string   `validate:"required,max=60"`
	Model       string   `validate:"required,max=80"`
	Year        int      `validate:"required,gte=1950,lte=2100"`
	MileageKM   int      `validate:"gte=0"`
	Condition   string   `validate:"required,oneof=new used"`
	AskingPrice int64    `validate:"gte=0"`
	VIN         string   `validate:"omitempty,vin"`
	Message     string   `validate:"max=2000"`
	Photos      []string `validate:"dive,required,url"`
}

func (s *Usecase) CreateSellLead(ctx context.Context, in CreateSellLeadInput) (*CreateLeadOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateSellLead")
	defer span.End()

	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkPhotos(in.Photos); err != nil {
		return nil, err
	}

	key, err := s.fingerprint(event.LeadTypeSell, in.Email, in.Make, in.Model, strconv.Itoa(in.Year))
	if err != nil {
		slog.ErrorContext(ctx, "failed to fingerprint lead", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	lead := entity.SellLead{
		ID:          s.uid.Generate(),
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		MileageKM:   in.MileageKM,
		Condition:   in.Condition,
		AskingPrice: in.AskingPrice,
		VIN:         strings.ToUpper(strings.TrimSpace(in.VIN)),
		Message:     strings.TrimSpace(in.Message),
		Photos:      lo.Uniq(in.Photos),
		Status:      entity.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.idempotency.Once(ctx, key, s.dedupeWindow(), func(ctx context.Context) error {
		return s.repoDB.CreateSellLead(ctx, lead)
	})
	if errors.Is(err, idempotency.ErrDuplicate) {
		return nil, errLeadDuplicate
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create sell lead", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "sell lead created", "lead_id", lead.ID, "photos", len(lead.Photos))
	s.publish(ctx, s.sellLeadMessage(lead))

	return &CreateLeadOutput{ID: lead.ID}, nil
}

// checkPhotos accepts only URLs this service handed out from UploadLeadPhoto.
func (s *Usecase) checkPhotos(photos []string) error {
	maxPhotos := s.cfg.GetInt("modules.lead.max_photos")
	if maxPhotos <= 0 {
		maxPhotos = defaultMaxPhotos
	}
	if len(photos) > maxPhotos {
		return goerror.NewInvalidInput(nil, "photos", "photos must contain at most "+strconv.Itoa(maxPhotos)+" items")
	}

	base := strings.TrimRight(s.cfg.GetString("modules.lead.photo_base_url"), "/") + "/"
	for _, p := range photos {
		if !strings.HasPrefix(p, base) {
			return goerror.NewInvalidInput(nil, "photos", "photos must be uploaded through the photo endpoint")
		}
	}

	return nil
}

func (s *Usecase) sellLeadMessage(l entity.SellLead) event.LeadCreatedMessage {
	details := []event.Pair{
		{Label: "Vehicle", Value: strconv.Itoa(l.Year) + " " + l.Make + " " + l.Model},
		{Label: "Mileage", Value: valueobject.Money{Amount: int64(l.MileageKM)}.Format() + " km"},
		{Label: "Condition", Value: l.Condition},
	}
	if l.AskingPrice > 0 {
		details = append(details, event.Pair{
			Label: "Asking price",
			Value: valueobject.Money{Amount: l.AskingPrice, Currency: s.cfg.GetString("site.currency")}.Format(),
		})
	}
	if l.VIN != "" {
		details = append(details, event.Pair{Label: "VIN", Value: l.VIN})
	}
	if len(l.Photos) > 0 {
		details = append(details, event.Pair{Label: "Photos", Value: strconv.Itoa(len(l.Photos))})
	}

	return event.LeadCreatedMessage{
		LeadID:    l.ID,
		Type:      event.LeadTypeSell,
		FullName:  l.FullName,
		Email:     l.Email,
		Phone:     l.Phone,
		Message:   l.Message,
		Subject:   "Sell request: " + strconv.Itoa(l.Year) + " " + l.Make + " " + l.Model,
		Details:   details,
		CreatedAt: l.CreatedAt.Unix(),
	}
}
