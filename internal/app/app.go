package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	identityUsecase "github.com/shandysiswandi/gomotor/internal/identity/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mail"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/pkg/otp"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// oneShot skips the message consumers, for CLI commands that exit.
	oneShot bool

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine       *goroutine.Manager
	validator       validator.Validator
	clock           clock.Clocker
	argon2id        hash.Hash
	bcrypt          hash.Hash
	uid             uid.NumberID
	uuid            uid.StringID
	totp            otp.OTP
	jwt             jwt.JWT
	cookie          session.Cookie
	mfaEncryptor    mfa.Encryptor
	mfaRecoveryCode mfa.RecoveryCodeGenerator

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	denylist      *session.Denylist
	mail          mail.Mail
	messaging     messaging.Messaging
	storage       storage.Storage
	casbin        *casbin.Enforcer

	// modules
	identity *identityUsecase.Usecase

	// server
	router     *router.Router
	httpServer *http.Server

	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

type Option func(*App)

// OneShot builds the app for a command that runs once and exits.
func OneShot() Option {
	return func(a *App) { a.oneShot = true }
}

// New initializes the application with default wiring and returns an App instance.
func New(opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()

	return app
}

// Identity exposes the identity usecase for CLI commands. It is nil when
// the module is disabled.
func (a *App) Identity() *identityUsecase.Usecase {
	return a.identity
}
