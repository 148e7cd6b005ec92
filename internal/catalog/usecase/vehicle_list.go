package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const (
	publicPageSize    = 12
	publicMaxPageSize = 60
	adminPageSize     = 20
	adminMaxPageSize  = 100

	maxYear = 9999
)

// ListVehiclesInput holds raw query values; enums are checked here so the
// caller gets one field error map.
type ListVehiclesInput struct {
	Search       string
	Make         string
	Model        string
	BodyType     string
	Fuel         string
	Transmission string
	Condition    string
	Status       string
	YearMin      int
	YearMax      int
	PriceMin     int64
	PriceMax     int64
	MileageMax   int
	Featured     *bool
	Sort         string
	Page         int
	Size         int
}

type ListVehiclesOutput struct {
	Page     int
	Size     int
	Total    int64
	Vehicles []entity.Vehicle
}

func (s *Usecase) ListVehicles(ctx context.Context, in ListVehiclesInput) (*ListVehiclesOutput, error) {
	ctx, span := s.startSpan(ctx, "ListVehicles")
	defer span.End()

	filter, err := buildFilter(in, false)
	if err != nil {
		return nil, err
	}

	return s.listVehicles(ctx, filter)
}

func (s *Usecase) AdminListVehicles(ctx context.Context, in ListVehiclesInput) (*ListVehiclesOutput, error) {
	ctx, span := s.startSpan(ctx, "AdminListVehicles")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActRead); err != nil {
		return nil, err
	}

	filter, err := buildFilter(in, true)
	if err != nil {
		return nil, err
	}

	return s.listVehicles(ctx, filter)
}

func (s *Usecase) listVehicles(ctx context.Context, filter entity.VehicleFilter) (*ListVehiclesOutput, error) {
	vehicles, total, err := s.repoDB.ListVehicles(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list vehicles", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListVehiclesOutput{
		Page:     filter.Page,
		Size:     filter.Size,
		Total:    total,
		Vehicles: vehicles,
	}, nil
}

func buildFilter(in ListVehiclesInput, admin bool) (entity.VehicleFilter, error) {
	var kv []string
	invalid := func(field, reason string) { kv = append(kv, field, reason) }

	f := entity.VehicleFilter{
		Search:       strings.TrimSpace(in.Search),
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		BodyType:     entity.BodyType(strings.ToLower(in.BodyType)),
		Fuel:         entity.Fuel(strings.ToLower(in.Fuel)),
		Transmission: entity.Transmission(strings.ToLower(in.Transmission)),
		Condition:    entity.Condition(strings.ToLower(in.Condition)),
		YearMin:      in.YearMin,
		YearMax:      in.YearMax,
		PriceMin:     in.PriceMin,
		PriceMax:     in.PriceMax,
		MileageMax:   in.MileageMax,
		Featured:     in.Featured,
		Sort:         entity.Sort(strings.ToLower(in.Sort)),
	}

	if f.BodyType != "" && !f.BodyType.Valid() {
		invalid("body_type", "body_type is not a known body type")
	}
	if f.Fuel != "" && !f.Fuel.Valid() {
		invalid("fuel", "fuel is not a known fuel type")
	}
	if f.Transmission != "" && !f.Transmission.Valid() {
		invalid("transmission", "transmission must be manual or automatic")
	}
	if f.Condition != "" && !f.Condition.Valid() {
		invalid("condition", "condition must be new or used")
	}
	if f.Sort == "" {
		f.Sort = entity.SortNewest
	} else if !f.Sort.Valid() {
		invalid("sort", "sort must be one of newest, price_asc, price_desc, year_desc, mileage_asc")
	}

	if in.YearMin < 0 || in.YearMax < 0 || in.PriceMin < 0 || in.PriceMax < 0 || in.MileageMax < 0 {
		invalid("range", "range values must not be negative")
	}
	if in.YearMin > maxYear || in.YearMax > maxYear {
		invalid("year_max", "year must not be greater than 9999")
	}
	if in.MileageMax > math.MaxInt32 {
		invalid("mileage_max", "mileage_max is too large")
	}
	if in.YearMin > 0 && in.YearMax > 0 && in.YearMin > in.YearMax {
		invalid("year_min", "year_min must not be greater than year_max")
	}
	if in.PriceMin > 0 && in.PriceMax > 0 && in.PriceMin > in.PriceMax {
		invalid("price_min", "price_min must not be greater than price_max")
	}

	status := entity.VehicleStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	switch {
	case status == "" && admin:
		f.Statuses = []entity.VehicleStatus{entity.StatusDraft, entity.StatusAvailable, entity.StatusReserved, entity.StatusSold}
	case status == "":
		f.Statuses = entity.PublicStatuses
	case admin && status.Valid(), !admin && status.IsPublic():
		f.Statuses = []entity.VehicleStatus{status}
	default:
		invalid("status", "status is not allowed")
	}

	def, maxSize := publicPageSize, publicMaxPageSize
	if admin {
		def, maxSize = adminPageSize, adminMaxPageSize
	}
	f.Page = max(in.Page, 1)
	f.Size = lo.Ternary(in.Size <= 0, def, min(in.Size, maxSize))
	if int64(f.Page-1)*int64(f.Size) > math.MaxInt32 {
		invalid("page", "page is too large")
	}

	if len(kv) > 0 {
		return entity.VehicleFilter{}, goerror.NewInvalidInput(nil, kv...)
	}

	return f, nil
}
