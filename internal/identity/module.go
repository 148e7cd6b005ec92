package identity

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/identity/inbound"
	"github.com/shandysiswandi/gomotor/internal/identity/outbound/cache"
	"github.com/shandysiswandi/gomotor/internal/identity/outbound/db"
	"github.com/shandysiswandi/gomotor/internal/identity/outbound/mq"
	"github.com/shandysiswandi/gomotor/internal/identity/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/pkg/otp"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
)

type Dependency struct {
	DBConn          *pgxpool.Pool              `validate:"required"`
	CacheConn       redis.UniversalClient      `validate:"required"`
	Enforcer        *casbin.Enforcer           `validate:"required"`
	Router          *router.Router             `validate:"required"`
	Messaging       messaging.Messaging        `validate:"required"`
	Storage         storage.Storage            `validate:"required"`
	Denylist        *session.Denylist          `validate:"required"`
	Cookie          session.Cookie
	Config          config.Config              `validate:"required"`
	Instrument      instrument.Instrumentation `validate:"required"`
	UID             uid.NumberID               `validate:"required"`
	UUID            uid.StringID               `validate:"required"`
	Bcrypt          hash.Hash                  `validate:"required"`
	Argon2ID        hash.Hash                  `validate:"required"`
	MFAEncryptor    mfa.Encryptor              `validate:"required"`
	MFARecoveryCode mfa.RecoveryCodeGenerator  `validate:"required"`
	Clock           clock.Clocker              `validate:"required"`
	Totp            otp.OTP                    `validate:"required"`
	Validator       validator.Validator        `validate:"required"`
	JWT             jwt.JWT                    `validate:"required"`
}

// New wires the module and returns the usecase so the CLI can reuse it.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:          db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:       cache.New(dep.CacheConn, dep.Instrument),
		RepoMessaging:   mq.NewMessaging(dep.Messaging, dep.Instrument),
		Revoker:         dep.Denylist,
		Validator:       dep.Validator,
		Config:          dep.Config,
		Storage:         dep.Storage,
		Bcrypt:          dep.Bcrypt,
		Argon2ID:        dep.Argon2ID,
		MFAEncryptor:    dep.MFAEncryptor,
		MFARecoveryCode: dep.MFARecoveryCode,
		UID:             dep.UID,
		UUID:            dep.UUID,
		Totp:            dep.Totp,
		Clock:           dep.Clock,
		JWT:             dep.JWT,
		Instrument:      dep.Instrument,
		Enforcer:        dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Cookie)

	return uc, nil
}
