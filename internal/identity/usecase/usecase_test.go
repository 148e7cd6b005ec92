package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pquerna "github.com/pquerna/otp"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/identity/outbound/cache"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/pkg/otp"
	"github.com/shandysiswandi/gomotor/internal/pkg/pgxcasbin"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testConfig = `
auth:
  mfa_pending_ttl_minutes: 5
modules:
  identity:
    login_max_attempts: 3
    login_lock_minutes: 15
    mfa_setup_ttl_minutes: 10
    avatar_bucket: media
    avatar_base_url: https://cdn.gomotor.test
    avatar_max_bytes: 1024
`

const testPassword = "Sup3r-secret!"

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) GetAdminByID(ctx context.Context, id int64) (*entity.Admin, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entity.Admin)
	return v, args.Error(1)
}

func (m *mockRepoDB) GetAdminLoginInfo(ctx context.Context, email string) (*entity.LoginInfo, error) {
	args := m.Called(ctx, email)
	v, _ := args.Get(0).(*entity.LoginInfo)
	return v, args.Error(1)
}

func (m *mockRepoDB) GetPasswordHash(ctx context.Context, adminID int64) (string, error) {
	args := m.Called(ctx, adminID)
	return args.String(0), args.Error(1)
}

func (m *mockRepoDB) GetMFA(ctx context.Context, adminID int64) (*entity.MFA, error) {
	args := m.Called(ctx, adminID)
	v, _ := args.Get(0).(*entity.MFA)
	return v, args.Error(1)
}

func (m *mockRepoDB) ListUnusedBackupCodes(ctx context.Context, adminID int64) ([]entity.BackupCode, error) {
	args := m.Called(ctx, adminID)
	v, _ := args.Get(0).([]entity.BackupCode)
	return v, args.Error(1)
}

func (m *mockRepoDB) CreateAdmin(ctx context.Context, admin entity.Admin, hash string) error {
	return m.Called(ctx, admin, hash).Error(0)
}

func (m *mockRepoDB) UpdateAdminProfile(ctx context.Context, id int64, fullName, email string) error {
	return m.Called(ctx, id, fullName, email).Error(0)
}

func (m *mockRepoDB) UpdateAdminAvatar(ctx context.Context, id int64, avatarURL string) error {
	return m.Called(ctx, id, avatarURL).Error(0)
}

func (m *mockRepoDB) UpdatePassword(ctx context.Context, adminID int64, hash string) error {
	return m.Called(ctx, adminID, hash).Error(0)
}

func (m *mockRepoDB) TouchMFA(ctx context.Context, adminID int64) error {
	return m.Called(ctx, adminID).Error(0)
}

func (m *mockRepoDB) UseBackupCode(ctx context.Context, id, adminID int64) (bool, error) {
	args := m.Called(ctx, id, adminID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) EnableMFA(ctx context.Context, mf entity.MFA, codes []entity.BackupCode) error {
	return m.Called(ctx, mf, codes).Error(0)
}

func (m *mockRepoDB) ReplaceBackupCodes(ctx context.Context, adminID int64, codes []entity.BackupCode) error {
	return m.Called(ctx, adminID, codes).Error(0)
}

func (m *mockRepoDB) DisableMFA(ctx context.Context, adminID int64) error {
	return m.Called(ctx, adminID).Error(0)
}

type mockMessaging struct{ mock.Mock }

func (m *mockMessaging) PublishAdminSecurity(ctx context.Context, msg event.AdminSecurityMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type sequence struct{ next int64 }

func (s *sequence) Generate() int64 {
	s.next++
	return s.next
}

// tokenIDs yields distinct ids so a rotated token never shares the revoked one's jti.
type tokenIDs struct{ n int }

func (s *tokenIDs) Generate() string {
	s.n++
	return "jti-" + strconv.Itoa(s.n)
}

type fixture struct {
	uc        *Usecase
	db        *mockRepoDB
	mq        *mockMessaging
	redis     *miniredis.Miniredis
	storage   *storage.Memory
	clock     *clock.Frozen
	jwt       *jwt.Symmetric
	totp      *otp.TOTP
	encryptor *mfa.AESGCM
	argon2id  *hash.Argon2id
	denylist  *session.Denylist
	hashed    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	enf, err := pgxcasbin.NewEnforcer(nil)
	require.NoError(t, err)
	_, err = enf.AddPolicy("admin", "*", "*")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("1", "admin")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clk := clock.NewFrozen(time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte(strings.Repeat("k", 64)),
		Issuer:     "gomotor",
		DefaultTTL: time.Hour,
		Clock:      clk,
		UUID:       &tokenIDs{},
	})
	require.NoError(t, err)

	enc, err := mfa.NewAESGCM(mfa.KeyRing{Current: 1, Keys: map[byte][]byte{1: []byte(strings.Repeat("a", 32))}})
	require.NoError(t, err)

	bcrypt := hash.NewBcrypt(4, "pepper")
	hashed, err := bcrypt.Hash(testPassword)
	require.NoError(t, err)

	f := &fixture{
		db:        &mockRepoDB{},
		mq:        &mockMessaging{},
		redis:     mr,
		storage:   storage.NewMemory(),
		clock:     clk,
		jwt:       signer,
		totp:      otp.NewTOTP("gomotor", 30, 1, pquerna.DigitsSix),
		encryptor: enc,
		argon2id:  hash.NewArgon2idWithParams("", hash.Argon2idParams{MemoryKiB: 64, Iterations: 1, Parallelism: 1}),
		denylist:  session.NewDenylist(client, clk),
		hashed:    string(hashed),
	}
	f.uc = New(Dependency{
		RepoDB:          f.db,
		RepoCache:       cache.New(client, instrument.NewNoop()),
		RepoMessaging:   f.mq,
		Revoker:         f.denylist,
		Validator:       v,
		Config:          cfg,
		Storage:         f.storage,
		Bcrypt:          bcrypt,
		Argon2ID:        f.argon2id,
		MFAEncryptor:    enc,
		MFARecoveryCode: mfa.NewRecoveryCode(),
		UID:             &sequence{next: 500},
		UUID:            &tokenIDs{},
		Totp:            f.totp,
		Clock:           clk,
		JWT:             signer,
		Instrument:      instrument.NewNoop(),
		Enforcer:        enf,
	})

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.mq.AssertExpectations(t)
	})

	return f
}

// session returns a context carrying verified claims for admin 1.
func (f *fixture) session(t *testing.T, stage jwt.Stage) (context.Context, jwt.Claims) {
	t.Helper()

	tok, err := f.jwt.Issue(jwt.Subject{AdminID: 1, Email: "admin@gomotor.test", Stage: stage})
	require.NoError(t, err)

	clm, err := f.jwt.Verify(tok.Value)
	require.NoError(t, err)

	return jwt.SetAuth(t.Context(), clm), clm
}

// sealedSecret returns a fresh TOTP secret and its at-rest form.
func (f *fixture) sealedSecret(t *testing.T, purpose mfa.Purpose) (string, []byte) {
	t.Helper()

	secret, _, err := f.totp.Generate("admin@gomotor.test")
	require.NoError(t, err)

	sealed, err := f.encryptor.Encrypt([]byte(secret), mfa.Scope{AdminID: 1, Purpose: purpose})
	require.NoError(t, err)

	return secret, sealed
}

func (f *fixture) code(t *testing.T, secret string) string {
	t.Helper()

	code, err := f.totp.GenerateCode(secret, f.clock.Now())
	require.NoError(t, err)
	return code
}

func sampleAdmin() *entity.Admin {
	return &entity.Admin{
		ID:       1,
		Email:    "admin@gomotor.test",
		FullName: "Dewi Lestari",
		Status:   entity.AdminStatusActive,
	}
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected goerror, got %v", err)
	return gerr.Code()
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected goerror, got %v", err)
	return gerr.Fields()
}
