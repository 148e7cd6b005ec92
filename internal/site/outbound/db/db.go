package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
	"github.com/shandysiswandi/gomotor/internal/site/entity"
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

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("site.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) Ping(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "Ping")
	defer func() { s.endSpan(span, err) }()

	return s.conn.Ping(ctx)
}

// ListPages returns vehicles in the given statuses, most recently updated first.
func (s *DB) ListPages(ctx context.Context, statuses []string, limit int32) (_ []entity.PageRef, err error) {
	ctx, span := s.startSpan(ctx, "ListPages")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListSitemapVehicles(ctx, sqlc.ListSitemapVehiclesParams{
		Statuses:  statuses,
		PageLimit: limit,
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(r sqlc.ListSitemapVehiclesRow, _ int) entity.PageRef {
		return entity.PageRef{Slug: r.Slug, UpdatedAt: r.UpdatedAt.Time}
	}), nil
}
