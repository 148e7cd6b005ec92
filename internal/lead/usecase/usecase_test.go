package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gomotor/internal/lead/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/idempotency"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/pgxcasbin"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testConfig = `
site:
  currency: IDR
modules:
  lead:
    dedupe_window_minutes: 15
    max_photos: 2
    photo_bucket: media
    photo_base_url: https://cdn.gomotor.test/
    photo_max_bytes: 1024
`

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) GetVehicleRef(ctx context.Context, id int64, statuses []string) (*entity.VehicleRef, error) {
	args := m.Called(ctx, id, statuses)
	v, _ := args.Get(0).(*entity.VehicleRef)
	return v, args.Error(1)
}

func (m *mockRepoDB) CreateBuyLead(ctx context.Context, l entity.BuyLead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockRepoDB) ListBuyLeads(ctx context.Context, f entity.Filter) ([]entity.BuyLead, int64, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]entity.BuyLead)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepoDB) GetBuyLead(ctx context.Context, id int64) (*entity.BuyLead, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entity.BuyLead)
	return v, args.Error(1)
}

func (m *mockRepoDB) UpdateBuyLead(ctx context.Context, id int64, status entity.Status, notes string) (*entity.BuyLead, error) {
	args := m.Called(ctx, id, status, notes)
	v, _ := args.Get(0).(*entity.BuyLead)
	return v, args.Error(1)
}

func (m *mockRepoDB) DeleteBuyLead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepoDB) CreateSellLead(ctx context.Context, l entity.SellLead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockRepoDB) ListSellLeads(ctx context.Context, f entity.Filter) ([]entity.SellLead, int64, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]entity.SellLead)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepoDB) GetSellLead(ctx context.Context, id int64) (*entity.SellLead, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entity.SellLead)
	return v, args.Error(1)
}

func (m *mockRepoDB) UpdateSellLead(ctx context.Context, id int64, status entity.Status, notes string) (*entity.SellLead, error) {
	args := m.Called(ctx, id, status, notes)
	v, _ := args.Get(0).(*entity.SellLead)
	return v, args.Error(1)
}

func (m *mockRepoDB) DeleteSellLead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessaging struct{ mock.Mock }

func (m *mockMessaging) PublishLeadCreated(ctx context.Context, msg event.LeadCreatedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type sequence struct{ next int64 }

func (s *sequence) Generate() int64 {
	s.next++
	return s.next
}

type fixedString string

func (f fixedString) Generate() string { return string(f) }

type fixture struct {
	uc      *Usecase
	db      *mockRepoDB
	mq      *mockMessaging
	redis   *miniredis.Miniredis
	storage *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	enf, err := pgxcasbin.NewEnforcer(nil)
	require.NoError(t, err)
	_, err = enf.AddPolicy("sales", "lead.leads", "read")
	require.NoError(t, err)
	_, err = enf.AddPolicy("sales", "lead.leads", "write")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("2", "sales")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{db: &mockRepoDB{}, mq: &mockMessaging{}, redis: mr, storage: storage.NewMemory()}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.mq,
		Idempotency:   idempotency.New(client, "idem:"),
		Storage:       f.storage,
		Validator:     v,
		Config:        cfg,
		HMAC:          hash.NewHMACSHA256("test-secret"),
		UID:           &sequence{next: 100},
		UUID:          fixedString("0190a1b2-c3d4"),
		Clock:         clock.NewFrozen(time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)),
		Instrument:    instrument.NewNoop(),
		Enforcer:      enf,
	})

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.mq.AssertExpectations(t)
	})

	return f
}

func sales() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{AdminID: 2, Email: "sales@gomotor.test", Stage: jwt.StageFull})
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected goerror, got %v", err)
	return gerr.Code()
}
