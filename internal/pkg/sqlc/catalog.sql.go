package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const vehicleColumns = `id, slug, vin, title, make, model, variant, year, price, currency,
       mileage_km, fuel, transmission, body_type, condition, color, engine_cc, seats,
       description, features, status, featured, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }) (Vehicle, error) {
	var i Vehicle
	err := row.Scan(
		&i.ID, &i.Slug, &i.Vin, &i.Title, &i.Make, &i.Model, &i.Variant, &i.Year, &i.Price, &i.Currency,
		&i.MileageKm, &i.Fuel, &i.Transmission, &i.BodyType, &i.Condition, &i.Color, &i.EngineCc, &i.Seats,
		&i.Description, &i.Features, &i.Status, &i.Featured, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func collectVehicles(rows pgx.Rows, err error) ([]Vehicle, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Vehicle
	for rows.Next() {
		i, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

// The filter block is shared by the list and count statements. Each optional
// filter is switched on by its boolean flag.
const vehicleFilter = `
where deleted_at is null
  and status = any($1::text[])
  and (not $2::bool or title ilike $3::text or make ilike $3::text or model ilike $3::text)
  and (not $4::bool or lower(make) = lower($5::text))
  and (not $6::bool or lower(model) = lower($7::text))
  and (not $8::bool or body_type = $9::text)
  and (not $10::bool or fuel = $11::text)
  and (not $12::bool or transmission = $13::text)
  and (not $14::bool or condition = $15::text)
  and (not $16::bool or year >= $17)
  and (not $18::bool or year <= $19)
  and (not $20::bool or price >= $21)
  and (not $22::bool or price <= $23)
  and (not $24::bool or mileage_km <= $25)
  and (not $26::bool or featured = $27)`

type VehicleFilterParams struct {
	Statuses             []string
	FilterBySearch       bool
	Search               string
	FilterByMake         bool
	Make                 string
	FilterByModel        bool
	Model                string
	FilterByBodyType     bool
	BodyType             string
	FilterByFuel         bool
	Fuel                 string
	FilterByTransmission bool
	Transmission         string
	FilterByCondition    bool
	Condition            string
	FilterByYearMin      bool
	YearMin              int32
	FilterByYearMax      bool
	YearMax              int32
	FilterByPriceMin     bool
	PriceMin             int64
	FilterByPriceMax     bool
	PriceMax             int64
	FilterByMileageMax   bool
	MileageMax           int32
	FilterByFeatured     bool
	Featured             bool
}

func (p VehicleFilterParams) args() []any {
	return []any{
		p.Statuses,
		p.FilterBySearch, p.Search,
		p.FilterByMake, p.Make,
		p.FilterByModel, p.Model,
		p.FilterByBodyType, p.BodyType,
		p.FilterByFuel, p.Fuel,
		p.FilterByTransmission, p.Transmission,
		p.FilterByCondition, p.Condition,
		p.FilterByYearMin, p.YearMin,
		p.FilterByYearMax, p.YearMax,
		p.FilterByPriceMin, p.PriceMin,
		p.FilterByPriceMax, p.PriceMax,
		p.FilterByMileageMax, p.MileageMax,
		p.FilterByFeatured, p.Featured,
	}
}

const listVehicles = `select ` + vehicleColumns + ` from vehicles` + vehicleFilter + `
order by
  case when $28::text = 'price_asc' then price end asc,
  case when $28::text = 'price_desc' then price end desc,
  case when $28::text = 'year_desc' then year end desc,
  case when $28::text = 'mileage_asc' then mileage_km end asc,
  created_at desc, id desc
limit $29 offset $30`

type ListVehiclesParams struct {
	VehicleFilterParams
	OrderBy    string
	PageLimit  int32
	PageOffset int32
}

func (q *Queries) ListVehicles(ctx context.Context, arg ListVehiclesParams) ([]Vehicle, error) {
	args := append(arg.args(), arg.OrderBy, arg.PageLimit, arg.PageOffset)
	return collectVehicles(q.db.Query(ctx, listVehicles, args...))
}

const countVehicles = `select count(*) from vehicles` + vehicleFilter

func (q *Queries) CountVehicles(ctx context.Context, arg VehicleFilterParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countVehicles, arg.args()...).Scan(&count)
	return count, err
}

const getVehicleBySlug = `select ` + vehicleColumns + ` from vehicles where slug = $1 and deleted_at is null`

func (q *Queries) GetVehicleBySlug(ctx context.Context, slug string) (Vehicle, error) {
	return scanVehicle(q.db.QueryRow(ctx, getVehicleBySlug, slug))
}

const getVehicleByID = `select ` + vehicleColumns + ` from vehicles where id = $1 and deleted_at is null`

func (q *Queries) GetVehicleByID(ctx context.Context, id int64) (Vehicle, error) {
	return scanVehicle(q.db.QueryRow(ctx, getVehicleByID, id))
}

const getPublicVehicleRef = `
select id, slug, title from vehicles
where id = $1 and deleted_at is null and status = any($2::text[])`

type GetPublicVehicleRefParams struct {
	ID       int64
	Statuses []string
}

type GetPublicVehicleRefRow struct {
	ID    int64
	Slug  string
	Title string
}

func (q *Queries) GetPublicVehicleRef(ctx context.Context, arg GetPublicVehicleRefParams) (GetPublicVehicleRefRow, error) {
	var i GetPublicVehicleRefRow
	err := q.db.QueryRow(ctx, getPublicVehicleRef, arg.ID, arg.Statuses).Scan(&i.ID, &i.Slug, &i.Title)
	return i, err
}

const createVehicle = `
insert into vehicles (
    id, slug, vin, title, make, model, variant, year, price, currency,
    mileage_km, fuel, transmission, body_type, condition, color, engine_cc, seats,
    description, features, status, featured
) values (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
    $11, $12, $13, $14, $15, $16, $17, $18,
    $19, $20, $21, $22
)`

type CreateVehicleParams struct {
	ID           int64
	Slug         string
	Vin          pgtype.Text
	Title        string
	Make         string
	Model        string
	Variant      string
	Year         int32
	Price        int64
	Currency     string
	MileageKm    int32
	Fuel         string
	Transmission string
	BodyType     string
	Condition    string
	Color        string
	EngineCc     int32
	Seats        int16
	Description  string
	Features     []string
	Status       string
	Featured     bool
}

func (q *Queries) CreateVehicle(ctx context.Context, arg CreateVehicleParams) error {
	_, err := q.db.Exec(ctx, createVehicle,
		arg.ID, arg.Slug, arg.Vin, arg.Title, arg.Make, arg.Model, arg.Variant, arg.Year, arg.Price, arg.Currency,
		arg.MileageKm, arg.Fuel, arg.Transmission, arg.BodyType, arg.Condition, arg.Color, arg.EngineCc, arg.Seats,
		arg.Description, arg.Features, arg.Status, arg.Featured,
	)
	return err
}

const updateVehicle = `
update vehicles set
    vin = $2, title = $3, make = $4, model = $5, variant = $6, year = $7, price = $8, currency = $9,
    mileage_km = $10, fuel = $11, transmission = $12, body_type = $13, condition = $14, color = $15,
    engine_cc = $16, seats = $17, description = $18, features = $19, status = $20, featured = $21,
    updated_at = now()
where id = $1 and deleted_at is null`

type UpdateVehicleParams struct {
	ID           int64
	Vin          pgtype.Text
	Title        string
	Make         string
	Model        string
	Variant      string
	Year         int32
	Price        int64
	Currency     string
	MileageKm    int32
	Fuel         string
	Transmission string
	BodyType     string
	Condition    string
	Color        string
	EngineCc     int32
	Seats        int16
	Description  string
	Features     []string
	Status       string
	Featured     bool
}

func (q *Queries) UpdateVehicle(ctx context.Context, arg UpdateVehicleParams) (int64, error) {
	return q.execRows(ctx, updateVehicle,
		arg.ID, arg.Vin, arg.Title, arg.Make, arg.Model, arg.Variant, arg.Year, arg.Price, arg.Currency,
		arg.MileageKm, arg.Fuel, arg.Transmission, arg.BodyType, arg.Condition, arg.Color,
		arg.EngineCc, arg.Seats, arg.Description, arg.Features, arg.Status, arg.Featured,
	)
}

const updateVehicleStatus = `update vehicles set status = $2, updated_at = now() where id = $1 and deleted_at is null returning slug`

type UpdateVehicleStatusParams struct {
	ID     int64
	Status string
}

func (q *Queries) UpdateVehicleStatus(ctx context.Context, arg UpdateVehicleStatusParams) (string, error) {
	var slug string
	err := q.db.QueryRow(ctx, updateVehicleStatus, arg.ID, arg.Status).Scan(&slug)
	return slug, err
}

const softDeleteVehicle = `update vehicles set deleted_at = now(), updated_at = now() where id = $1 and deleted_at is null returning slug`

func (q *Queries) SoftDeleteVehicle(ctx context.Context, id int64) (string, error) {
	var slug string
	err := q.db.QueryRow(ctx, softDeleteVehicle, id).Scan(&slug)
	return slug, err
}

const touchVehicle = `update vehicles set updated_at = now() where id = $1`

func (q *Queries) TouchVehicle(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, touchVehicle, id)
	return err
}

const vehicleImageColumns = `id, vehicle_id, url, object_key, position, created_at`

func collectVehicleImages(rows pgx.Rows, err error) ([]VehicleImage, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []VehicleImage
	for rows.Next() {
		var i VehicleImage
		if err := rows.Scan(&i.ID, &i.VehicleID, &i.Url, &i.ObjectKey, &i.Position, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const listVehicleImages = `select ` + vehicleImageColumns + ` from vehicle_images where vehicle_id = $1 order by position`

func (q *Queries) ListVehicleImages(ctx context.Context, vehicleID int64) ([]VehicleImage, error) {
	return collectVehicleImages(q.db.Query(ctx, listVehicleImages, vehicleID))
}

const listVehicleCoverImages = `
select distinct on (vehicle_id) ` + vehicleImageColumns + `
from vehicle_images
where vehicle_id = any($1::bigint[])
order by vehicle_id, position`

func (q *Queries) ListVehicleCoverImages(ctx context.Context, vehicleIDs []int64) ([]VehicleImage, error) {
	return collectVehicleImages(q.db.Query(ctx, listVehicleCoverImages, vehicleIDs))
}

const vehicleImageSlot = `select count(*), coalesce(max(position), 0) + 1 from vehicle_images where vehicle_id = $1`

type VehicleImageSlotRow struct {
	Count        int64
	NextPosition int32
}

func (q *Queries) VehicleImageSlot(ctx context.Context, vehicleID int64) (VehicleImageSlotRow, error) {
	var i VehicleImageSlotRow
	err := q.db.QueryRow(ctx, vehicleImageSlot, vehicleID).Scan(&i.Count, &i.NextPosition)
	return i, err
}

const createVehicleImage = `insert into vehicle_images (id, vehicle_id, url, object_key, position) values ($1, $2, $3, $4, $5)`

type CreateVehicleImageParams struct {
	ID        int64
	VehicleID int64
	Url       string
	ObjectKey string
	Position  int32
}

func (q *Queries) CreateVehicleImage(ctx context.Context, arg CreateVehicleImageParams) error {
	_, err := q.db.Exec(ctx, createVehicleImage, arg.ID, arg.VehicleID, arg.Url, arg.ObjectKey, arg.Position)
	return err
}

const deleteVehicleImage = `delete from vehicle_images where id = $1 and vehicle_id = $2 returning ` + vehicleImageColumns

type DeleteVehicleImageParams struct {
	ID        int64
	VehicleID int64
}

func (q *Queries) DeleteVehicleImage(ctx context.Context, arg DeleteVehicleImageParams) (VehicleImage, error) {
	var i VehicleImage
	err := q.db.QueryRow(ctx, deleteVehicleImage, arg.ID, arg.VehicleID).
		Scan(&i.ID, &i.VehicleID, &i.Url, &i.ObjectKey, &i.Position, &i.CreatedAt)
	return i, err
}

const listMakes = `
select make, count(*) from vehicles
where deleted_at is null and status = any($1::text[])
group by make
order by make`

type ListMakesRow struct {
	Make  string
	Count int64
}

func (q *Queries) ListMakes(ctx context.Context, statuses []string) ([]ListMakesRow, error) {
	rows, err := q.db.Query(ctx, listMakes, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListMakesRow
	for rows.Next() {
		var i ListMakesRow
		if err := rows.Scan(&i.Make, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

const listSitemapVehicles = `
select slug, updated_at from vehicles
where deleted_at is null and status = any($1::text[])
order by updated_at desc
limit $2`

type ListSitemapVehiclesParams struct {
	Statuses  []string
	PageLimit int32
}

type ListSitemapVehiclesRow struct {
	Slug      string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) ListSitemapVehicles(ctx context.Context, arg ListSitemapVehiclesParams) ([]ListSitemapVehiclesRow, error) {
	rows, err := q.db.Query(ctx, listSitemapVehicles, arg.Statuses, arg.PageLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListSitemapVehiclesRow
	for rows.Next() {
		var i ListSitemapVehiclesRow
		if err := rows.Scan(&i.Slug, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}
