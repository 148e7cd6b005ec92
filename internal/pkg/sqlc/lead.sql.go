package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// LeadFilterParams is shared by the buy and sell list statements.
type LeadFilterParams struct {
	FilterByStatus   bool
	Status           string
	FilterBySearch   bool
	Search           string
	FilterByDateFrom bool
	DateFrom         pgtype.Timestamptz
	FilterByDateTo   bool
	DateTo           pgtype.Timestamptz
}

func (p LeadFilterParams) args() []any {
	return []any{
		p.FilterByStatus, p.Status,
		p.FilterBySearch, p.Search,
		p.FilterByDateFrom, p.DateFrom,
		p.FilterByDateTo, p.DateTo,
	}
}

const leadFilter = `
where (not $1::bool or status = $2::text)
  and (not $3::bool or full_name ilike $4::text or email ilike $4::text or phone ilike $4::text)
  and (not $5::bool or created_at >= $6::timestamptz)
  and (not $7::bool or created_at < $8::timestamptz)`

const leadPage = `
order by created_at desc, id desc
limit $9 offset $10`

type ListLeadsParams struct {
	LeadFilterParams
	PageLimit  int32
	PageOffset int32
}

const buyLeadColumns = `id, vehicle_id, full_name, email, phone, preferred_contact, message,
       wants_financing, has_trade_in, status, notes, source, created_at, updated_at`

func scanBuyLead(row interface{ Scan(...any) error }) (BuyLead, error) {
	var i BuyLead
	err := row.Scan(&i.ID, &i.VehicleID, &i.FullName, &i.Email, &i.Phone, &i.PreferredContact, &i.Message,
		&i.WantsFinancing, &i.HasTradeIn, &i.Status, &i.Notes, &i.Source, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createBuyLead = `
insert into buy_leads (
    id, vehicle_id, full_name, email, phone, preferred_contact, message,
    wants_financing, has_trade_in, status, source
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

type CreateBuyLeadParams struct {
	ID               int64
	VehicleID        pgtype.Int8
	FullName         string
	Email            string
	Phone            string
	PreferredContact string
	Message          string
	WantsFinancing   bool
	HasTradeIn       bool
	Status           string
	Source           string
}

func (q *Queries) CreateBuyLead(ctx context.Context, arg CreateBuyLeadParams) error {
	_, err := q.db.Exec(ctx, createBuyLead, arg.ID, arg.VehicleID, arg.FullName, arg.Email, arg.Phone,
		arg.PreferredContact, arg.Message, arg.WantsFinancing, arg.HasTradeIn, arg.Status, arg.Source)
	return err
}

const listBuyLeads = `select ` + buyLeadColumns + ` from buy_leads` + leadFilter + leadPage

func (q *Queries) ListBuyLeads(ctx context.Context, arg ListLeadsParams) ([]BuyLead, error) {
	rows, err := q.db.Query(ctx, listBuyLeads, append(arg.args(), arg.PageLimit, arg.PageOffset)...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BuyLead, error) { return scanBuyLead(row) })
}

const countBuyLeads = `select count(*) from buy_leads` + leadFilter

func (q *Queries) CountBuyLeads(ctx context.Context, arg LeadFilterParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countBuyLeads, arg.args()...).Scan(&count)
	return count, err
}

const getBuyLead = `select ` + buyLeadColumns + ` from buy_leads where id = $1`

func (q *Queries) GetBuyLead(ctx context.Context, id int64) (BuyLead, error) {
	return scanBuyLead(q.db.QueryRow(ctx, getBuyLead, id))
}

const updateBuyLead = `update buy_leads set status = $2, notes = $3, updated_at = now() where id = $1 returning ` + buyLeadColumns

type UpdateLeadParams struct {
	ID     int64
	Status string
	Notes  string
}

func (q *Queries) UpdateBuyLead(ctx context.Context, arg UpdateLeadParams) (BuyLead, error) {
	return scanBuyLead(q.db.QueryRow(ctx, updateBuyLead, arg.ID, arg.Status, arg.Notes))
}

const deleteBuyLead = `delete from buy_leads where id = $1`

func (q *Queries) DeleteBuyLead(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteBuyLead, id)
}

const sellLeadColumns = `id, full_name, email, phone, make, model, year, mileage_km, condition,
       asking_price, vin, message, photos, status, notes, created_at, updated_at`

func scanSellLead(row interface{ Scan(...any) error }) (SellLead, error) {
	var i SellLead
	err := row.Scan(&i.ID, &i.FullName, &i.Email, &i.Phone, &i.Make, &i.Model, &i.Year, &i.MileageKm, &i.Condition,
		&i.AskingPrice, &i.Vin, &i.Message, &i.Photos, &i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createSellLead = `
insert into sell_leads (
    id, full_name, email, phone, make, model, year, mileage_km, condition,
    asking_price, vin, message, photos, status
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

type CreateSellLeadParams struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	Make        string
	Model       string
	Year        int32
	MileageKm   int32
	Condition   string
	AskingPrice pgtype.Int8
	Vin         pgtype.Text
	Message     string
	Photos      []string
	Status      string
}

func (q *Queries) CreateSellLead(ctx context.Context, arg CreateSellLeadParams) error {
	_, err := q.db.Exec(ctx, createSellLead, arg.ID, arg.FullName, arg.Email, arg.Phone, arg.Make, arg.Model,
		arg.Year, arg.MileageKm, arg.Condition, arg.AskingPrice, arg.Vin, arg.Message, arg.Photos, arg.Status)
	return err
}

const listSellLeads = `select ` + sellLeadColumns + ` from sell_leads` + leadFilter + leadPage

func (q *Queries) ListSellLeads(ctx context.Context, arg ListLeadsParams) ([]SellLead, error) {
	rows, err := q.db.Query(ctx, listSellLeads, append(arg.args(), arg.PageLimit, arg.PageOffset)...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (SellLead, error) { return scanSellLead(row) })
}

const countSellLeads = `select count(*) from sell_leads` + leadFilter

func (q *Queries) CountSellLeads(ctx context.Context, arg LeadFilterParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countSellLeads, arg.args()...).Scan(&count)
	return count, err
}

const getSellLead = `select ` + sellLeadColumns + ` from sell_leads where id = $1`

func (q *Queries) GetSellLead(ctx context.Context, id int64) (SellLead, error) {
	return scanSellLead(q.db.QueryRow(ctx, getSellLead, id))
}

const updateSellLead = `update sell_leads set status = $2, notes = $3, updated_at = now() where id = $1 returning ` + sellLeadColumns

func (q *Queries) UpdateSellLead(ctx context.Context, arg UpdateLeadParams) (SellLead, error) {
	return scanSellLead(q.db.QueryRow(ctx, updateSellLead, arg.ID, arg.Status, arg.Notes))
}

const deleteSellLead = `delete from sell_leads where id = $1`

func (q *Queries) DeleteSellLead(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteSellLead, id)
}
