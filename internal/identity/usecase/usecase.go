package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/pkg/otp"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"go.opentelemetry.io/otel/trace"
)

var (
	errAuthRequired       = goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	errInvalidCredentials = goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	errInvalidSecondStep  = goerror.NewBusiness("Invalid two-factor code", goerror.CodeUnauthorized)
	errTooManyAttempts    = goerror.NewBusiness("Too many attempts, try again later", goerror.CodeTooManyRequest)
	errEmailTaken         = goerror.NewBusiness("Email is already in use", goerror.CodeConflict)
)

type repoDB interface {
	GetAdminByID(ctx context.Context, id int64) (*entity.Admin, error)
	GetAdminLoginInfo(ctx context.Context, email string) (*entity.LoginInfo, error)
	GetPasswordHash(ctx context.Context, adminID int64) (string, error)
	GetMFA(ctx context.Context, adminID int64) (*entity.MFA, error)
	ListUnusedBackupCodes(ctx context.Context, adminID int64) ([]entity.BackupCode, error)

	CreateAdmin(ctx context.Context, admin entity.Admin, hash string) error
	UpdateAdminProfile(ctx context.Context, id int64, fullName, email string) error
	UpdateAdminAvatar(ctx context.Context, id int64, avatarURL string) error
	UpdatePassword(ctx context.Context, adminID int64, hash string) error
	TouchMFA(ctx context.Context, adminID int64) error
	UseBackupCode(ctx context.Context, id, adminID int64) (bool, error)

	EnableMFA(ctx context.Context, m entity.MFA, codes []entity.BackupCode) error
	ReplaceBackupCodes(ctx context.Context, adminID int64, codes []entity.BackupCode) error
	DisableMFA(ctx context.Context, adminID int64) error
}

type repoCache interface {
	LoginFailures(ctx context.Context, email string) (int64, error)
	RecordLoginFailure(ctx context.Context, email string, window time.Duration) (int64, error)
	ResetLoginFailures(ctx context.Context, email string) error

	SetPendingTOTP(ctx context.Context, adminID int64, sealed []byte, ttl time.Duration) error
	GetPendingTOTP(ctx context.Context, adminID int64) ([]byte, error)
	DeletePendingTOTP(ctx context.Context, adminID int64) error
}

type repoMessaging interface {
	PublishAdminSecurity(ctx context.Context, msg event.AdminSecurityMessage) error
}

type revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type enforcer interface {
	Enforce(rvals ...any) (bool, error)
	GetRolesForUser(name string, domain ...string) ([]string, error)
	AddGroupingPolicy(params ...any) (bool, error)
}

type Usecase struct {
	repoDB          repoDB
	repoCache       repoCache
	repoMessaging   repoMessaging
	revoker         revoker
	validator       validator.Validator
	cfg             config.Config
	storage         storage.Storage
	bcrypt          hash.Hash
	argon2id        hash.Hash
	mfaEncryptor    mfa.Encryptor
	mfaRecoveryCode mfa.RecoveryCodeGenerator
	uid             uid.NumberID
	uuid            uid.StringID
	totp            otp.OTP
	clock           clock.Clocker
	jwt             jwt.JWT
	ins             instrument.Instrumentation
	enforcer        enforcer
}

type Dependency struct {
	RepoDB          repoDB
	RepoCache       repoCache
	RepoMessaging   repoMessaging
	Revoker         revoker
	Validator       validator.Validator
	Config          config.Config
	Storage         storage.Storage
	Bcrypt          hash.Hash
	Argon2ID        hash.Hash
	MFAEncryptor    mfa.Encryptor
	MFARecoveryCode mfa.RecoveryCodeGenerator
	UID             uid.NumberID
	UUID            uid.StringID
	Totp            otp.OTP
	Clock           clock.Clocker
	JWT             jwt.JWT
	Instrument      instrument.Instrumentation
	Enforcer        enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:          dep.RepoDB,
		repoCache:       dep.RepoCache,
		repoMessaging:   dep.RepoMessaging,
		revoker:         dep.Revoker,
		validator:       dep.Validator,
		cfg:             dep.Config,
		storage:         dep.Storage,
		bcrypt:          dep.Bcrypt,
		argon2id:        dep.Argon2ID,
		mfaEncryptor:    dep.MFAEncryptor,
		mfaRecoveryCode: dep.MFARecoveryCode,
		uid:             dep.UID,
		uuid:            dep.UUID,
		totp:            dep.Totp,
		clock:           dep.Clock,
		jwt:             dep.JWT,
		ins:             dep.Instrument,
		enforcer:        dep.Enforcer,
	}
}

// Client describes where a security-relevant request came from. It ends up
// in the notification the admin receives.
type Client struct {
	IP        string
	UserAgent string
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.Stage != jwt.StageFull {
		return nil, errAuthRequired
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// activeAdmin loads the admin behind a token. A deleted or disabled account
// is treated as no session at all.
func (s *Usecase) activeAdmin(ctx context.Context, adminID int64) (*entity.Admin, error) {
	admin, err := s.repoDB.GetAdminByID(ctx, adminID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin account not found", "admin_id", adminID)
		return nil, errAuthRequired
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin by id", "admin_id", adminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !admin.Status.Active() {
		slog.WarnContext(ctx, "admin account is disabled", "admin_id", adminID)
		return nil, errAuthRequired
	}

	return admin, nil
}

func (s *Usecase) issue(ctx context.Context, adminID int64, email string, stage jwt.Stage) (*jwt.Token, error) {
	sub := jwt.Subject{AdminID: adminID, Email: email, Stage: stage}
	if stage == jwt.StageMFA {
		sub.TTL = s.cfg.GetMinute("auth.mfa_pending_ttl_minutes")
		if sub.TTL <= 0 {
			sub.TTL = 5 * time.Minute
		}
	}

	tok, err := s.jwt.Issue(sub)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue session token", "admin_id", adminID, "stage", stage, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &tok, nil
}

// revokeCurrent denylists the token carried by the request.
func (s *Usecase) revokeCurrent(ctx context.Context, clm *jwt.Claims) error {
	if clm == nil || clm.ID == "" {
		return nil
	}

	var exp time.Time
	if clm.ExpiresAt != nil {
		exp = clm.ExpiresAt.Time
	}

	if err := s.revoker.Revoke(ctx, clm.ID, exp); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session token", "admin_id", clm.AdminID, "jti", clm.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) verifyPassword(ctx context.Context, adminID int64, plain string) (bool, error) {
	hashed, err := s.repoDB.GetPasswordHash(ctx, adminID)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, errAuthRequired
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get password hash", "admin_id", adminID, "error", err)
		return false, goerror.NewServer(err)
	}

	return s.bcrypt.Verify(hashed, plain), nil
}

func (s *Usecase) publishSecurity(ctx context.Context, admin *entity.Admin, change string, c Client) {
	msg := event.AdminSecurityMessage{
		AdminID:    admin.ID,
		Email:      admin.Email,
		FullName:   admin.FullName,
		Change:     change,
		IP:         c.IP,
		UserAgent:  c.UserAgent,
		OccurredAt: s.clock.Now().Unix(),
	}

	if err := s.repoMessaging.PublishAdminSecurity(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish admin security event", "admin_id", admin.ID, "change", change, "error", err)
	}
}

func subject(adminID int64) string {
	return strconv.FormatInt(adminID, 10)
}
