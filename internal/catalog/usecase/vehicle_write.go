package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/strcase"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

var errVINTaken = goerror.NewBusiness("A vehicle with this VIN already exists", goerror.CodeConflict)

type VehicleInput struct {
	VIN          string   `validate:"omitempty,vin"`
	Title        string   `validate:"omitempty,max=160"`
	Make         string   `validate:"required,max=60"`
	Model        string   `validate:"required,max=80"`
	Variant      string   `validate:"max=80"`
	Year         int      `validate:"required,gte=1950,lte=2100"`
	Price        int64    `validate:"gte=0"`
	Currency     string   `validate:"required,len=3,alpha"`
	MileageKM    int      `validate:"gte=0"`
	Fuel         string   `validate:"required,oneof=petrol diesel hybrid electric lpg"`
	Transmission string   `validate:"required,oneof=manual automatic"`
	BodyType     string   `validate:"required,oneof=sedan hatchback suv mpv pickup coupe convertible wagon van"`
	Condition    string   `validate:"required,oneof=new used"`
	Color        string   `validate:"max=40"`
	EngineCC     int      `validate:"gte=0,lte=20000"`
	Seats        int      `validate:"gte=0,lte=60"`
	Description  string   `validate:"max=10000"`
	Features     []string `validate:"max=50,dive,required,max=80"`
	Status       string   `validate:"omitempty,oneof=draft available reserved sold"`
	Featured     bool
}

func (in VehicleInput) apply(v *entity.Vehicle) {
	v.VIN = strings.ToUpper(strings.TrimSpace(in.VIN))
	v.Make = strings.TrimSpace(in.Make)
	v.Model = strings.TrimSpace(in.Model)
	v.Variant = strings.TrimSpace(in.Variant)
	v.Year = in.Year
	v.Price = in.Price
	v.Currency = strings.ToUpper(in.Currency)
	v.MileageKM = in.MileageKM
	v.Fuel = entity.Fuel(in.Fuel)
	v.Transmission = entity.Transmission(in.Transmission)
	v.BodyType = entity.BodyType(in.BodyType)
	v.Condition = entity.Condition(in.Condition)
	v.Color = strings.TrimSpace(in.Color)
	v.EngineCC = in.EngineCC
	v.Seats = in.Seats
	v.Description = strings.TrimSpace(in.Description)
	v.Features = lo.Uniq(lo.Compact(lo.Map(in.Features, func(f string, _ int) string { return strings.TrimSpace(f) })))
	v.Featured = in.Featured

	v.Title = strings.TrimSpace(in.Title)
	if v.Title == "" {
		v.Title = strings.Join(lo.Compact([]string{strconv.Itoa(in.Year), v.Make, v.Model, v.Variant}), " ")
	}
	if in.Status != "" {
		v.Status = entity.VehicleStatus(in.Status)
	}
}

func (s *Usecase) CreateVehicle(ctx context.Context, in VehicleInput) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "CreateVehicle")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	v := entity.Vehicle{ID: s.uid.Generate(), Status: entity.StatusDraft, CreatedAt: now, UpdatedAt: now}
	in.apply(&v)
	v.Slug = vehicleSlug(v)

	err := s.repoDB.CreateVehicle(ctx, v)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errVINTaken
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create vehicle", "slug", v.Slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "vehicle created", "vehicle_id", v.ID, "slug", v.Slug)

	return &v, nil
}

// vehicleSlug ends in the last six digits of the id so two listings of the
// same model never collide.
func vehicleSlug(v entity.Vehicle) string {
	id := strconv.FormatInt(v.ID, 10)
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strcase.Slugify(strconv.Itoa(v.Year), v.Make, v.Model, v.Variant, id)
}

type UpdateVehicleInput struct {
	ID int64
	VehicleInput
}

// UpdateVehicle replaces every editable field. The slug is kept so shared
// links keep working.
func (s *Usecase) UpdateVehicle(ctx context.Context, in UpdateVehicleInput) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "UpdateVehicle")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in.VehicleInput); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	v, err := s.vehicleByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	in.apply(v)
	v.UpdatedAt = s.clock.Now()

	err = s.repoDB.UpdateVehicle(ctx, *v)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errVehicleNotFound
	}
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errVINTaken
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update vehicle", "vehicle_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.invalidate(ctx, v.Slug)

	return v, nil
}

type UpdateVehicleStatusInput struct {
	ID     int64
	Status string `validate:"required,oneof=draft available reserved sold"`
}

func (s *Usecase) UpdateVehicleStatus(ctx context.Context, in UpdateVehicleStatusInput) error {
	ctx, span := s.startSpan(ctx, "UpdateVehicleStatus")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	slug, err := s.repoDB.UpdateVehicleStatus(ctx, in.ID, entity.VehicleStatus(in.Status))
	if errors.Is(err, goerror.ErrNotFound) {
		return errVehicleNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update vehicle status", "vehicle_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.invalidate(ctx, slug)

	return nil
}

type DeleteVehicleInput struct {
	ID int64
}

// DeleteVehicle soft-deletes; the row stays for leads that reference it.
func (s *Usecase) DeleteVehicle(ctx context.Context, in DeleteVehicleInput) error {
	ctx, span := s.startSpan(ctx, "DeleteVehicle")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite); err != nil {
		return err
	}

	slug, err := s.repoDB.DeleteVehicle(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return errVehicleNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete vehicle", "vehicle_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.invalidate(ctx, slug)
	slog.InfoContext(ctx, "vehicle deleted", "vehicle_id", in.ID, "slug", slug)

	return nil
}
