package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/pgxcasbin"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testConfig = `
site:
  name: Gomotor Auto
  url: https://gomotor.test/
modules:
  catalog:
    cache_ttl_seconds: 60
    image_bucket: media
    image_base_url: https://cdn.gomotor.test
    image_max_bytes: 1024
    max_images: 2
`

const (
	adminID = int64(1)
	salesID = int64(2)
)

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) ListVehicles(ctx context.Context, f entity.VehicleFilter) ([]entity.Vehicle, int64, error) {
	args := m.Called(ctx, f)
	v, _ := args.Get(0).([]entity.Vehicle)
	return v, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepoDB) GetVehicleBySlug(ctx context.Context, slug string) (*entity.Vehicle, error) {
	args := m.Called(ctx, slug)
	v, _ := args.Get(0).(*entity.Vehicle)
	return v, args.Error(1)
}

func (m *mockRepoDB) GetVehicleByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*entity.Vehicle)
	return v, args.Error(1)
}

func (m *mockRepoDB) ListMakes(ctx context.Context, statuses []entity.VehicleStatus) ([]entity.MakeCount, error) {
	args := m.Called(ctx, statuses)
	v, _ := args.Get(0).([]entity.MakeCount)
	return v, args.Error(1)
}

func (m *mockRepoDB) NextImageSlot(ctx context.Context, vehicleID int64) (int, int, error) {
	args := m.Called(ctx, vehicleID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockRepoDB) CreateVehicle(ctx context.Context, v entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockRepoDB) UpdateVehicle(ctx context.Context, v entity.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockRepoDB) UpdateVehicleStatus(ctx context.Context, id int64, status entity.VehicleStatus) (string, error) {
	args := m.Called(ctx, id, status)
	return args.String(0), args.Error(1)
}

func (m *mockRepoDB) DeleteVehicle(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockRepoDB) CreateVehicleImage(ctx context.Context, img entity.VehicleImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *mockRepoDB) DeleteVehicleImage(ctx context.Context, vehicleID, imageID int64) (*entity.VehicleImage, error) {
	args := m.Called(ctx, vehicleID, imageID)
	v, _ := args.Get(0).(*entity.VehicleImage)
	return v, args.Error(1)
}

type mockRepoCache struct{ mock.Mock }

func (m *mockRepoCache) GetVehicle(ctx context.Context, slug string) (*entity.Vehicle, error) {
	args := m.Called(ctx, slug)
	v, _ := args.Get(0).(*entity.Vehicle)
	return v, args.Error(1)
}

func (m *mockRepoCache) SetVehicle(ctx context.Context, v entity.Vehicle, ttl time.Duration) error {
	return m.Called(ctx, v, ttl).Error(0)
}

func (m *mockRepoCache) DeleteVehicle(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type fixedNumber struct{ id int64 }

func (f fixedNumber) Generate() int64 { return f.id }

type fixedString struct{ id string }

func (f fixedString) Generate() string { return f.id }

type fixture struct {
	uc      *Usecase
	db      *mockRepoDB
	cache   *mockRepoCache
	storage *storage.Memory
	now     time.Time
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
	_, err = enf.AddPolicy("sales", "catalog.vehicles", "read")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("1", "admin")
	require.NoError(t, err)
	_, err = enf.AddGroupingPolicy("2", "sales")
	require.NoError(t, err)

	f := &fixture{
		db:      &mockRepoDB{},
		cache:   &mockRepoCache{},
		storage: storage.NewMemory(),
		now:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.uc = New(Dependency{
		RepoDB:     f.db,
		RepoCache:  f.cache,
		Storage:    f.storage,
		Validator:  v,
		Config:     cfg,
		UID:        fixedNumber{id: 7340032123456789},
		UUID:       fixedString{id: "0190a1b2-c3d4"},
		Clock:      clock.NewFrozen(f.now),
		Instrument: instrument.NewNoop(),
		Enforcer:   enf,
	})

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	return f
}

func as(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{AdminID: id, Email: "staff@gomotor.test", Stage: jwt.StageFull})
}

func sampleVehicle() *entity.Vehicle {
	return &entity.Vehicle{
		ID:           99,
		Slug:         "2021-toyota-avanza-g-456789",
		VIN:          "MHFM1BA3JMK123456",
		Title:        "2021 Toyota Avanza G",
		Make:         "Toyota",
		Model:        "Avanza",
		Variant:      "G",
		Year:         2021,
		Price:        215000000,
		Currency:     "IDR",
		MileageKM:    32000,
		Fuel:         entity.FuelPetrol,
		Transmission: entity.TransmissionAutomatic,
		BodyType:     entity.BodyMPV,
		Condition:    entity.ConditionUsed,
		Color:        "Silver",
		Seats:        7,
		Status:       entity.StatusAvailable,
		Images:       []entity.VehicleImage{{ID: 1, VehicleID: 99, URL: "https://cdn.gomotor.test/vehicles/99/a.jpg", Position: 1}},
	}
}
