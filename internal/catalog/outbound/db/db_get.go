package db

import (
	"context"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func filterParams(f entity.VehicleFilter) sqlc.VehicleFilterParams {
	p := sqlc.VehicleFilterParams{
		Statuses:             statusStrings(f.Statuses),
		FilterBySearch:       f.Search != "",
		Search:               likePattern(f.Search),
		FilterByMake:         f.Make != "",
		Make:                 f.Make,
		FilterByModel:        f.Model != "",
		Model:                f.Model,
		FilterByBodyType:     f.BodyType != "",
		BodyType:             string(f.BodyType),
		FilterByFuel:         f.Fuel != "",
		Fuel:                 string(f.Fuel),
		FilterByTransmission: f.Transmission != "",
		Transmission:         string(f.Transmission),
		FilterByCondition:    f.Condition != "",
		Condition:            string(f.Condition),
		FilterByYearMin:      f.YearMin > 0,
		YearMin:              int32(f.YearMin),
		FilterByYearMax:      f.YearMax > 0,
		YearMax:              int32(f.YearMax),
		FilterByPriceMin:     f.PriceMin > 0,
		PriceMin:             f.PriceMin,
		FilterByPriceMax:     f.PriceMax > 0,
		PriceMax:             f.PriceMax,
		FilterByMileageMax:   f.MileageMax > 0,
		MileageMax:           int32(f.MileageMax),
		FilterByFeatured:     f.Featured != nil,
	}
	if f.Featured != nil {
		p.Featured = *f.Featured
	}
	return p
}

// ListVehicles returns one page plus the total match count. Each vehicle
// carries its cover image only.
func (s *DB) ListVehicles(ctx context.Context, f entity.VehicleFilter) (_ []entity.Vehicle, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListVehicles")
	defer func() { s.endSpan(span, err) }()

	params := filterParams(f)

	rows, err := s.query.ListVehicles(ctx, sqlc.ListVehiclesParams{
		VehicleFilterParams: params,
		OrderBy:             string(f.Sort),
		PageLimit:           int32(f.Size),
		PageOffset:          int32((f.Page - 1) * f.Size),
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	total, err := s.query.CountVehicles(ctx, params)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	if len(rows) == 0 {
		return []entity.Vehicle{}, total, nil
	}

	covers, err := s.query.ListVehicleCoverImages(ctx, lo.Map(rows, func(v sqlc.Vehicle, _ int) int64 { return v.ID }))
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	coverByVehicle := lo.KeyBy(covers, func(i sqlc.VehicleImage) int64 { return i.VehicleID })

	vehicles := make([]entity.Vehicle, 0, len(rows))
	for _, row := range rows {
		v := toVehicle(row)
		if cover, ok := coverByVehicle[row.ID]; ok {
			v.Images = []entity.VehicleImage{toImage(cover)}
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, total, nil
}

func (s *DB) GetVehicleBySlug(ctx context.Context, slug string) (_ *entity.Vehicle, err error) {
	ctx, span := s.startSpan(ctx, "GetVehicleBySlug")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetVehicleBySlug(ctx, slug)
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.withImages(ctx, row)
}

func (s *DB) GetVehicleByID(ctx context.Context, id int64) (_ *entity.Vehicle, err error) {
	ctx, span := s.startSpan(ctx, "GetVehicleByID")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.withImages(ctx, row)
}

func (s *DB) withImages(ctx context.Context, row sqlc.Vehicle) (*entity.Vehicle, error) {
	images, err := s.query.ListVehicleImages(ctx, row.ID)
	if err != nil {
		return nil, s.mapError(err)
	}

	v := toVehicle(row)
	v.Images = lo.Map(images, func(i sqlc.VehicleImage, _ int) entity.VehicleImage { return toImage(i) })

	return &v, nil
}

func (s *DB) ListMakes(ctx context.Context, statuses []entity.VehicleStatus) (_ []entity.MakeCount, err error) {
	ctx, span := s.startSpan(ctx, "ListMakes")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListMakes(ctx, statusStrings(statuses))
	if err != nil {
		return nil, s.mapError(err)
	}

	return lo.Map(rows, func(r sqlc.ListMakesRow, _ int) entity.MakeCount {
		return entity.MakeCount{Make: r.Make, Count: r.Count}
	}), nil
}

// NextImageSlot reports how many images the vehicle has and the position
// a new one should take.
func (s *DB) NextImageSlot(ctx context.Context, vehicleID int64) (_ int, _ int, err error) {
	ctx, span := s.startSpan(ctx, "NextImageSlot")
	defer func() { s.endSpan(span, err) }()

	slot, err := s.query.VehicleImageSlot(ctx, vehicleID)
	if err != nil {
		return 0, 0, s.mapError(err)
	}

	return int(slot.Count), int(slot.NextPosition), nil
}
