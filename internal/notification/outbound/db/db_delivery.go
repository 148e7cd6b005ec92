package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func (s *DB) CreateDelivery(ctx context.Context, d entity.Delivery) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDelivery")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(s.query.CreateDelivery(ctx, sqlc.CreateDeliveryParams{
		ID:        d.ID,
		Event:     d.Event,
		Recipient: d.Recipient,
		Subject:   d.Subject,
		Status:    string(d.Status),
	}))
}

func (s *DB) UpdateDelivery(ctx context.Context, id int64, status entity.DeliveryStatus, attempts int32, lastError string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateDelivery")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.UpdateDeliveryStatus(ctx, sqlc.UpdateDeliveryStatusParams{
		ID:        id,
		Status:    string(status),
		Attempts:  attempts,
		LastError: lastError,
	})
	if err != nil {
		return s.mapError(err)
	}
	if n == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) ListDeliveries(ctx context.Context, f entity.DeliveryFilter) (_ []entity.Delivery, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListDeliveries")
	defer func() { s.endSpan(span, err) }()

	total, err := s.query.CountDeliveries(ctx, sqlc.CountDeliveriesParams{
		FilterByStatus: f.Status != "",
		Status:         string(f.Status),
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	if total == 0 {
		return []entity.Delivery{}, 0, nil
	}

	rows, err := s.query.ListDeliveries(ctx, sqlc.ListDeliveriesParams{
		FilterByStatus: f.Status != "",
		Status:         string(f.Status),
		PageLimit:      int32(f.Size),
		PageOffset:     int32((f.Page - 1) * f.Size),
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	out := make([]entity.Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Delivery{
			ID:        row.ID,
			Event:     row.Event,
			Recipient: row.Recipient,
			Subject:   row.Subject,
			Status:    entity.DeliveryStatus(row.Status),
			Attempts:  row.Attempts,
			LastError: row.LastError,
			CreatedAt: row.CreatedAt.Time,
			UpdatedAt: row.UpdatedAt.Time,
		})
	}

	return out, total, nil
}
