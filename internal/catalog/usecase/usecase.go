package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	ListVehicles(ctx context.Context, f entity.VehicleFilter) ([]entity.Vehicle, int64, error)
	GetVehicleBySlug(ctx context.Context, slug string) (*entity.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int64) (*entity.Vehicle, error)
	ListMakes(ctx context.Context, statuses []entity.VehicleStatus) ([]entity.MakeCount, error)
	NextImageSlot(ctx context.Context, vehicleID int64) (count int, position int, err error)

	CreateVehicle(ctx context.Context, v entity.Vehicle) error
	UpdateVehicle(ctx context.Context, v entity.Vehicle) error
	UpdateVehicleStatus(ctx context.Context, id int64, status entity.VehicleStatus) (string, error)
	DeleteVehicle(ctx context.Context, id int64) (string, error)
	CreateVehicleImage(ctx context.Context, img entity.VehicleImage) error
	DeleteVehicleImage(ctx context.Context, vehicleID, imageID int64) (*entity.VehicleImage, error)
}

type repoCache interface {
	GetVehicle(ctx context.Context, slug string) (*entity.Vehicle, error)
	SetVehicle(ctx context.Context, v entity.Vehicle, ttl time.Duration) error
	DeleteVehicle(ctx context.Context, slug string) error
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	repoCache repoCache
	storage   storage.Storage
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	enforcer  enforcer
}

type Dependency struct {
	RepoDB     repoDB
	RepoCache  repoCache
	Storage    storage.Storage
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Enforcer   enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoCache: dep.RepoCache,
		storage:   dep.Storage,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(strconv.FormatInt(clm.AdminID, 10), obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// invalidate drops the cached public copy. Failures are logged, not returned.
func (s *Usecase) invalidate(ctx context.Context, slug string) {
	if slug == "" {
		return
	}
	if err := s.repoCache.DeleteVehicle(ctx, slug); err != nil {
		slog.WarnContext(ctx, "failed to invalidate vehicle cache", "slug", slug, "error", err)
	}
}

func (s *Usecase) cacheTTL() time.Duration {
	ttl := s.cfg.GetSecond("modules.catalog.cache_ttl_seconds")
	if ttl <= 0 {
		return 5 * time.Minute
	}
	return ttl
}
