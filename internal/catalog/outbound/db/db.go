package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn  *pgxpool.Pool
	query *sqlc.Queries
	ins   instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn:  conn,
		query: sqlc.New(conn),
		ins:   ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func statusStrings(in []entity.VehicleStatus) []string {
	return lo.Map(in, func(s entity.VehicleStatus, _ int) string { return string(s) })
}

// likePattern escapes the ILIKE wildcards in a user search term.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func toVehicle(v sqlc.Vehicle) entity.Vehicle {
	return entity.Vehicle{
		ID:           v.ID,
		Slug:         v.Slug,
		VIN:          v.Vin.String,
		Title:        v.Title,
		Make:         v.Make,
		Model:        v.Model,
		Variant:      v.Variant,
		Year:         int(v.Year),
		Price:        v.Price,
		Currency:     v.Currency,
		MileageKM:    int(v.MileageKm),
		Fuel:         entity.Fuel(v.Fuel),
		Transmission: entity.Transmission(v.Transmission),
		BodyType:     entity.BodyType(v.BodyType),
		Condition:    entity.Condition(v.Condition),
		Color:        v.Color,
		EngineCC:     int(v.EngineCc),
		Seats:        int(v.Seats),
		Description:  v.Description,
		Features:     v.Features,
		Status:       entity.VehicleStatus(v.Status),
		Featured:     v.Featured,
		CreatedAt:    v.CreatedAt.Time,
		UpdatedAt:    v.UpdatedAt.Time,
	}
}

func toImage(i sqlc.VehicleImage) entity.VehicleImage {
	return entity.VehicleImage{
		ID:        i.ID,
		VehicleID: i.VehicleID,
		URL:       i.Url,
		Key:       i.ObjectKey,
		Position:  int(i.Position),
	}
}
