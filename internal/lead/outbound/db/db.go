package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	query *sqlc.Queries
	ins   instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{query: sqlc.New(conn), ins: ins}
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
	return s.ins.Tracer("lead.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetVehicleRef finds a live listing in one of statuses.
func (s *DB) GetVehicleRef(ctx context.Context, id int64, statuses []string) (_ *entity.VehicleRef, err error) {
	ctx, span := s.startSpan(ctx, "GetVehicleRef")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetPublicVehicleRef(ctx, sqlc.GetPublicVehicleRefParams{ID: id, Statuses: statuses})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.VehicleRef{ID: row.ID, Slug: row.Slug, Title: row.Title}, nil
}

func filterParams(f entity.Filter) sqlc.LeadFilterParams {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return sqlc.LeadFilterParams{
		FilterByStatus:   f.Status != "",
		Status:           string(f.Status),
		FilterBySearch:   f.Search != "",
		Search:           "%" + r.Replace(f.Search) + "%",
		FilterByDateFrom: !f.DateFrom.IsZero(),
		DateFrom:         timestamptz(f.DateFrom),
		FilterByDateTo:   !f.DateTo.IsZero(),
		DateTo:           timestamptz(f.DateTo),
	}
}

func listParams(f entity.Filter) sqlc.ListLeadsParams {
	return sqlc.ListLeadsParams{
		LeadFilterParams: filterParams(f),
		PageLimit:        int32(f.Size),
		PageOffset:       int32((f.Page - 1) * f.Size),
	}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func optionalInt8(v int64) pgtype.Int8 {
	return pgtype.Int8{Int64: v, Valid: v != 0}
}

func optionalText(v string) pgtype.Text {
	return pgtype.Text{String: v, Valid: v != ""}
}
