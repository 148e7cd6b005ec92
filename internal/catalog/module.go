package catalog

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/catalog/inbound"
	"github.com/shandysiswandi/gomotor/internal/catalog/outbound/cache"
	"github.com/shandysiswandi/gomotor/internal/catalog/outbound/db"
	"github.com/shandysiswandi/gomotor/internal/catalog/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  redis.UniversalClient      `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:  cache.New(dep.CacheConn, dep.Instrument),
		Storage:    dep.Storage,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
