//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("gomotor"),
		postgres.WithUsername("gomotor"),
		postgres.WithPassword("gomotor"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migration.New(dsn)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewDB(pool, instrument.NewNoop())
}

func sampleVehicle(id int64, slug string, status entity.VehicleStatus, price int64) entity.Vehicle {
	return entity.Vehicle{
		ID:           id,
		Slug:         slug,
		Title:        "2021 Toyota Avanza G",
		Make:         "Toyota",
		Model:        "Avanza",
		Variant:      "G",
		Year:         2021,
		Price:        price,
		Currency:     "IDR",
		MileageKM:    42000,
		Fuel:         entity.FuelPetrol,
		Transmission: entity.TransmissionManual,
		BodyType:     entity.BodyMPV,
		Condition:    entity.ConditionUsed,
		Features:     []string{"abs", "airbag"},
		Status:       status,
	}
}

func TestDB_VehicleLifecycle(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	avanza := sampleVehicle(1, "2021-toyota-avanza-g-a1", entity.StatusAvailable, 185_000_000)
	avanza.VIN = "MHKM1BA3JMK012345"
	require.NoError(t, s.CreateVehicle(ctx, avanza))
	require.NoError(t, s.CreateVehicle(ctx, sampleVehicle(2, "2019-toyota-avanza-g-b2", entity.StatusDraft, 150_000_000)))
	require.NoError(t, s.CreateVehicle(ctx, sampleVehicle(3, "2020-toyota-avanza-g-c3", entity.StatusReserved, 170_000_000)))

	dup := sampleVehicle(4, "2021-toyota-avanza-g-a1", entity.StatusAvailable, 1)
	assert.ErrorIs(t, s.CreateVehicle(ctx, dup), goerror.ErrConflict)

	require.NoError(t, s.CreateVehicleImage(ctx, entity.VehicleImage{
		ID: 10, VehicleID: 1, URL: "https://cdn.gomotor.test/v/1/a.jpg", Key: "vehicles/1/a.jpg", Position: 1,
	}))
	count, next, err := s.NextImageSlot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, next)

	list, total, err := s.ListVehicles(ctx, entity.VehicleFilter{
		Statuses: entity.PublicStatuses,
		Sort:     entity.SortPriceAsc,
		Page:     1,
		Size:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
	require.Len(t, list[1].Images, 1)

	got, err := s.GetVehicleBySlug(ctx, "2021-toyota-avanza-g-a1")
	require.NoError(t, err)
	assert.Equal(t, "MHKM1BA3JMK012345", got.VIN)
	assert.Equal(t, []string{"abs", "airbag"}, got.Features)
	assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Minute)

	makes, err := s.ListMakes(ctx, entity.PublicStatuses)
	require.NoError(t, err)
	assert.Equal(t, []entity.MakeCount{{Make: "Toyota", Count: 2}}, makes)

	slug, err := s.UpdateVehicleStatus(ctx, 1, entity.StatusSold)
	require.NoError(t, err)
	assert.Equal(t, "2021-toyota-avanza-g-a1", slug)

	slug, err = s.DeleteVehicle(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "2020-toyota-avanza-g-c3", slug)

	_, err = s.GetVehicleByID(ctx, 3)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	img, err := s.DeleteVehicleImage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "vehicles/1/a.jpg", img.Key)

	_, err = s.DeleteVehicleImage(ctx, 1, 10)
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_SearchEscapesWildcards(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.CreateVehicle(ctx, sampleVehicle(1, "2021-toyota-avanza-g-a1", entity.StatusAvailable, 185_000_000)))

	_, total, err := s.ListVehicles(ctx, entity.VehicleFilter{
		Statuses: entity.PublicStatuses,
		Search:   "%",
		Page:     1,
		Size:     12,
	})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = s.ListVehicles(ctx, entity.VehicleFilter{
		Statuses: entity.PublicStatuses,
		Search:   "avanza",
		Page:     1,
		Size:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
