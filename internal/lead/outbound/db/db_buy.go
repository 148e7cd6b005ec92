package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func toBuyLead(l sqlc.BuyLead) entity.BuyLead {
	return entity.BuyLead{
		ID:               l.ID,
		VehicleID:        l.VehicleID.Int64,
		FullName:         l.FullName,
		Email:            l.Email,
		Phone:            l.Phone,
		PreferredContact: entity.PreferredContact(l.PreferredContact),
		Message:          l.Message,
		WantsFinancing:   l.WantsFinancing,
		HasTradeIn:       l.HasTradeIn,
		Status:           entity.Status(l.Status),
		Notes:            l.Notes,
		Source:           l.Source,
		CreatedAt:        l.CreatedAt.Time,
		UpdatedAt:        l.UpdatedAt.Time,
	}
}

func (s *DB) CreateBuyLead(ctx context.Context, l entity.BuyLead) (err error) {
	ctx, span := s.startSpan(ctx, "CreateBuyLead")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateBuyLead(ctx, sqlc.CreateBuyLeadParams{
		ID:               l.ID,
		VehicleID:        optionalInt8(l.VehicleID),
		FullName:         l.FullName,
		Email:            l.Email,
		Phone:            l.Phone,
		PreferredContact: string(l.PreferredContact),
		Message:          l.Message,
		WantsFinancing:   l.WantsFinancing,
		HasTradeIn:       l.HasTradeIn,
		Status:           string(l.Status),
		Source:           l.Source,
	}))
	return err
}

func (s *DB) ListBuyLeads(ctx context.Context, f entity.Filter) (_ []entity.BuyLead, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListBuyLeads")
	defer func() { s.endSpan(span, err) }()

	total, err := s.query.CountBuyLeads(ctx, filterParams(f))
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	if total == 0 {
		return []entity.BuyLead{}, 0, nil
	}

	rows, err := s.query.ListBuyLeads(ctx, listParams(f))
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	out := make([]entity.BuyLead, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBuyLead(row))
	}

	return out, total, nil
}

func (s *DB) GetBuyLead(ctx context.Context, id int64) (_ *entity.BuyLead, err error) {
	ctx, span := s.startSpan(ctx, "GetBuyLead")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetBuyLead(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	l := toBuyLead(row)
	return &l, nil
}

func (s *DB) UpdateBuyLead(ctx context.Context, id int64, status entity.Status, notes string) (_ *entity.BuyLead, err error) {
	ctx, span := s.startSpan(ctx, "UpdateBuyLead")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.UpdateBuyLead(ctx, sqlc.UpdateLeadParams{ID: id, Status: string(status), Notes: notes})
	if err != nil {
		return nil, s.mapError(err)
	}

	l := toBuyLead(row)
	return &l, nil
}

func (s *DB) DeleteBuyLead(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteBuyLead")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.DeleteBuyLead(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if n == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
