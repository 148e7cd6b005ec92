package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func toSellLead(l sqlc.SellLead) entity.SellLead {
	photos := l.Photos
	if photos == nil {
		photos = []string{}
	}

	return entity.SellLead{
		ID:          l.ID,
		FullName:    l.FullName,
		Email:       l.Email,
		Phone:       l.Phone,
		Make:        l.Make,
		Model:       l.Model,
		Year:        int(l.Year),
		MileageKM:   int(l.MileageKm),
		Condition:   l.Condition,
		AskingPrice: l.AskingPrice.Int64,
		VIN:         l.Vin.String,
		Message:     l.Message,
		Photos:      photos,
		Status:      entity.Status(l.Status),
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt.Time,
		UpdatedAt:   l.UpdatedAt.Time,
	}
}

func (s *DB) CreateSellLead(ctx context.Context, l entity.SellLead) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSellLead")
	defer func() { s.endSpan(span, err) }()

	photos := l.Photos
	if photos == nil {
		photos = []string{}
	}

	err = s.mapError(s.query.CreateSellLead(ctx, sqlc.CreateSellLeadParams{
		ID:          l.ID,
		FullName:    l.FullName,
		Email:       l.Email,
		Phone:       l.Phone,
		Make:        l.Make,
		Model:       l.Model,
		Year:        int32(l.Year),
		MileageKm:   int32(l.MileageKM),
		Condition:   l.Condition,
		AskingPrice: optionalInt8(l.AskingPrice),
		Vin:         optionalText(l.VIN),
		Message:     l.Message,
		Photos:      photos,
		Status:      string(l.Status),
	}))
	return err
}

func (s *DB) ListSellLeads(ctx context.Context, f entity.Filter) (_ []entity.SellLead, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListSellLeads")
	defer func() { s.endSpan(span, err) }()

	total, err := s.query.CountSellLeads(ctx, filterParams(f))
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	if total == 0 {
		return []entity.SellLead{}, 0, nil
	}

	rows, err := s.query.ListSellLeads(ctx, listParams(f))
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	out := make([]entity.SellLead, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSellLead(row))
	}

	return out, total, nil
}

func (s *DB) GetSellLead(ctx context.Context, id int64) (_ *entity.SellLead, err error) {
	ctx, span := s.startSpan(ctx, "GetSellLead")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetSellLead(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	l := toSellLead(row)
	return &l, nil
}

func (s *DB) UpdateSellLead(ctx context.Context, id int64, status entity.Status, notes string) (_ *entity.SellLead, err error) {
	ctx, span := s.startSpan(ctx, "UpdateSellLead")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.UpdateSellLead(ctx, sqlc.UpdateLeadParams{ID: id, Status: string(status), Notes: notes})
	if err != nil {
		return nil, s.mapError(err)
	}

	l := toSellLead(row)
	return &l, nil
}

func (s *DB) DeleteSellLead(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSellLead")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.DeleteSellLead(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if n == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
