package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
)

func (s *Usecase) ListMakes(ctx context.Context) ([]entity.MakeCount, error) {
	ctx, span := s.startSpan(ctx, "ListMakes")
	defer span.End()

	makes, err := s.repoDB.ListMakes(ctx, entity.PublicStatuses)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list makes", "error", err)
		return nil, goerror.NewServer(err)
	}

	return makes, nil
}
