package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/pgxcasbin"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testConfig = `
site:
  name: Gomotor
  email: hello@gomotor.test
  url: https://gomotor.test/
  address:
    street: Jl. Sudirman 1
    locality: Jakarta
modules:
  notification:
    sales_inbox: sales@gomotor.test
    retry_base_ms: 1
    retry_max: 3
`

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) CreateDelivery(ctx context.Context, d entity.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockRepoDB) UpdateDelivery(ctx context.Context, id int64, status entity.DeliveryStatus, attempts int32, lastError string) error {
	return m.Called(ctx, id, status, attempts, lastError).Error(0)
}

func (m *mockRepoDB) ListDeliveries(ctx context.Context, f entity.DeliveryFilter) ([]entity.Delivery, int64, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]entity.Delivery)
	return v, args.Get(1).(int64), args.Error(2)
}

type mockRepoMail struct{ mock.Mock }

func (m *mockRepoMail) Send(ctx context.Context, e entity.Email) error {
	return m.Called(ctx, e).Error(0)
}

type sequence struct{ next int64 }

func (s *sequence) Generate() int64 {
	s.next++
	return s.next
}

type fixture struct {
	uc   *Usecase
	db   *mockRepoDB
	mail *mockRepoMail
}

func newFixture(t *testing.T, yaml string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	enf, err := pgxcasbin.NewEnforcer(nil)
	require.NoError(t, err)
	_, err = enf.AddPolicy("admin", "*", "*")
	require.NoError(t, err)
	_, err = enf.AddPolicy("sales", "lead.leads", "read")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("1", "admin")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("2", "sales")
	require.NoError(t, err)

	f := &fixture{db: &mockRepoDB{}, mail: &mockRepoMail{}}
	f.uc, err = New(Dependency{
		RepoDB:     f.db,
		RepoMail:   f.mail,
		Config:     cfg,
		UID:        &sequence{next: 900},
		Clock:      clock.NewFrozen(time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)),
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Enforcer:   enf,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.mail.AssertExpectations(t)
	})

	return f
}
