package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const createDelivery = `insert into notification_deliveries (id, event, recipient, subject, status) values ($1, $2, $3, $4, $5)`

type CreateDeliveryParams struct {
	ID        int64
	Event     string
	Recipient string
	Subject   string
	Status    string
}

func (q *Queries) CreateDelivery(ctx context.Context, arg CreateDeliveryParams) error {
	_, err := q.db.Exec(ctx, createDelivery, arg.ID, arg.Event, arg.Recipient, arg.Subject, arg.Status)
	return err
}

const updateDeliveryStatus = `
update notification_deliveries
set status = $2, attempts = $3, last_error = $4, updated_at = now()
where id = $1`

type UpdateDeliveryStatusParams struct {
	ID        int64
	Status    string
	Attempts  int32
	LastError string
}

func (q *Queries) UpdateDeliveryStatus(ctx context.Context, arg UpdateDeliveryStatusParams) (int64, error) {
	return q.execRows(ctx, updateDeliveryStatus, arg.ID, arg.Status, arg.Attempts, arg.LastError)
}

const listDeliveries = `
select id, event, recipient, subject, status, attempts, last_error, created_at, updated_at
from notification_deliveries
where (not $1::bool or status = $2::text)
order by created_at desc, id desc
limit $3 offset $4`

type ListDeliveriesParams struct {
	FilterByStatus bool
	Status         string
	PageLimit      int32
	PageOffset     int32
}

func (q *Queries) ListDeliveries(ctx context.Context, arg ListDeliveriesParams) ([]NotificationDelivery, error) {
	rows, err := q.db.Query(ctx, listDeliveries, arg.FilterByStatus, arg.Status, arg.PageLimit, arg.PageOffset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (NotificationDelivery, error) {
		var i NotificationDelivery
		err := row.Scan(&i.ID, &i.Event, &i.Recipient, &i.Subject, &i.Status, &i.Attempts, &i.LastError, &i.CreatedAt, &i.UpdatedAt)
		return i, err
	})
}

const countDeliveries = `select count(*) from notification_deliveries where (not $1::bool or status = $2::text)`

type CountDeliveriesParams struct {
	FilterByStatus bool
	Status         string
}

func (q *Queries) CountDeliveries(ctx context.Context, arg CountDeliveriesParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countDeliveries, arg.FilterByStatus, arg.Status).Scan(&count)
	return count, err
}
