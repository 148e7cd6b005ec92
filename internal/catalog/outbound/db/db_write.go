package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func vinText(vin string) pgtype.Text {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	return pgtype.Text{String: vin, Valid: vin != ""}
}

func features(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func (s *DB) CreateVehicle(ctx context.Context, v entity.Vehicle) (err error) {
	ctx, span := s.startSpan(ctx, "CreateVehicle")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.query.CreateVehicle(ctx, sqlc.CreateVehicleParams{
		ID:           v.ID,
		Slug:         v.Slug,
		Vin:          vinText(v.VIN),
		Title:        v.Title,
		Make:         v.Make,
		Model:        v.Model,
		Variant:      v.Variant,
		Year:         int32(v.Year),
		Price:        v.Price,
		Currency:     v.Currency,
		MileageKm:    int32(v.MileageKM),
		Fuel:         string(v.Fuel),
		Transmission: string(v.Transmission),
		BodyType:     string(v.BodyType),
		Condition:    string(v.Condition),
		Color:        v.Color,
		EngineCc:     int32(v.EngineCC),
		Seats:        int16(v.Seats),
		Description:  v.Description,
		Features:     features(v.Features),
		Status:       string(v.Status),
		Featured:     v.Featured,
	}))
	return err
}

func (s *DB) UpdateVehicle(ctx context.Context, v entity.Vehicle) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateVehicle")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.UpdateVehicle(ctx, sqlc.UpdateVehicleParams{
		ID:           v.ID,
		Vin:          vinText(v.VIN),
		Title:        v.Title,
		Make:         v.Make,
		Model:        v.Model,
		Variant:      v.Variant,
		Year:         int32(v.Year),
		Price:        v.Price,
		Currency:     v.Currency,
		MileageKm:    int32(v.MileageKM),
		Fuel:         string(v.Fuel),
		Transmission: string(v.Transmission),
		BodyType:     string(v.BodyType),
		Condition:    string(v.Condition),
		Color:        v.Color,
		EngineCc:     int32(v.EngineCC),
		Seats:        int16(v.Seats),
		Description:  v.Description,
		Features:     features(v.Features),
		Status:       string(v.Status),
		Featured:     v.Featured,
	})
	if err != nil {
		return s.mapError(err)
	}
	if n == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// UpdateVehicleStatus returns the slug so the caller can drop cached copies.
func (s *DB) UpdateVehicleStatus(ctx context.Context, id int64, status entity.VehicleStatus) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "UpdateVehicleStatus")
	defer func() { s.endSpan(span, err) }()

	slug, err := s.query.UpdateVehicleStatus(ctx, sqlc.UpdateVehicleStatusParams{ID: id, Status: string(status)})
	if err != nil {
		return "", s.mapError(err)
	}

	return slug, nil
}

func (s *DB) DeleteVehicle(ctx context.Context, id int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "DeleteVehicle")
	defer func() { s.endSpan(span, err) }()

	slug, err := s.query.SoftDeleteVehicle(ctx, id)
	if err != nil {
		return "", s.mapError(err)
	}

	return slug, nil
}

func (s *DB) CreateVehicleImage(ctx context.Context, img entity.VehicleImage) (err error) {
	ctx, span := s.startSpan(ctx, "CreateVehicleImage")
	defer func() { s.endSpan(span, err) }()

	if err = s.query.CreateVehicleImage(ctx, sqlc.CreateVehicleImageParams{
		ID:        img.ID,
		VehicleID: img.VehicleID,
		Url:       img.URL,
		ObjectKey: img.Key,
		Position:  int32(img.Position),
	}); err != nil {
		return s.mapError(err)
	}

	err = s.mapError(s.query.TouchVehicle(ctx, img.VehicleID))
	return err
}

func (s *DB) DeleteVehicleImage(ctx context.Context, vehicleID, imageID int64) (_ *entity.VehicleImage, err error) {
	ctx, span := s.startSpan(ctx, "DeleteVehicleImage")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.DeleteVehicleImage(ctx, sqlc.DeleteVehicleImageParams{ID: imageID, VehicleID: vehicleID})
	if err != nil {
		return nil, s.mapError(err)
	}

	if err = s.query.TouchVehicle(ctx, vehicleID); err != nil {
		return nil, s.mapError(err)
	}

	img := toImage(row)
	return &img, nil
}
