package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

var errVehicleNotFound = goerror.NewBusiness("Vehicle not found", goerror.CodeNotFound)

type GetVehicleInput struct {
	Slug string
}

// GetVehicle serves the public detail page from the cache when possible.
// Drafts are never returned, even when a stale cache entry holds one.
func (s *Usecase) GetVehicle(ctx context.Context, in GetVehicleInput) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "GetVehicle")
	defer span.End()

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		return nil, errVehicleNotFound
	}

	cached, err := s.repoCache.GetVehicle(ctx, slug)
	if err == nil && cached.Status.IsPublic() {
		return cached, nil
	}
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "failed to read vehicle cache", "slug", slug, "error", err)
	}

	v, err := s.repoDB.GetVehicleBySlug(ctx, slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errVehicleNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get vehicle by slug", "slug", slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !v.Status.IsPublic() {
		return nil, errVehicleNotFound
	}

	if err := s.repoCache.SetVehicle(ctx, *v, s.cacheTTL()); err != nil {
		slog.WarnContext(ctx, "failed to write vehicle cache", "slug", slug, "error", err)
	}

	return v, nil
}

type AdminGetVehicleInput struct {
	ID int64
}

func (s *Usecase) AdminGetVehicle(ctx context.Context, in AdminGetVehicleInput) (*entity.Vehicle, error) {
	ctx, span := s.startSpan(ctx, "AdminGetVehicle")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActRead); err != nil {
		return nil, err
	}

	return s.vehicleByID(ctx, in.ID)
}

func (s *Usecase) vehicleByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := s.repoDB.GetVehicleByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errVehicleNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get vehicle by id", "vehicle_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return v, nil
}
