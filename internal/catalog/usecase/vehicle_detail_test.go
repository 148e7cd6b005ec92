package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetVehicle(t *testing.T) {
	t.Run("CacheHit", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		v := sampleVehicle()
		f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(v, nil).Once()

		// Act
		got, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: "  " + v.Slug})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, v.ID, got.ID)
	})

	t.Run("CacheMissFillsCache", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(nil, goerror.ErrNotFound).Once()
		f.db.On("GetVehicleBySlug", mock.Anything, v.Slug).Return(v, nil).Once()
		f.cache.On("SetVehicle", mock.Anything, *v, time.Minute).Return(nil).Once()

		got, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: v.Slug})

		require.NoError(t, err)
		assert.Equal(t, v.Slug, got.Slug)
	})

	t.Run("CacheErrorFallsBackToDB", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(nil, errors.New("redis down")).Once()
		f.db.On("GetVehicleBySlug", mock.Anything, v.Slug).Return(v, nil).Once()
		f.cache.On("SetVehicle", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		_, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: v.Slug})

		require.NoError(t, err)
	})

	t.Run("DraftIsHidden", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		v.Status = entity.StatusDraft
		f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(nil, goerror.ErrNotFound).Once()
		f.db.On("GetVehicleBySlug", mock.Anything, v.Slug).Return(v, nil).Once()

		_, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: v.Slug})

		assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))
	})

	t.Run("SoldIsVisible", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		v.Status = entity.StatusSold
		f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(v, nil).Once()

		got, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: v.Slug})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusSold, got.Status)
	})

	t.Run("Unknown", func(t *testing.T) {
		f := newFixture(t)
		f.cache.On("GetVehicle", mock.Anything, "nope").Return(nil, goerror.ErrNotFound).Once()
		f.db.On("GetVehicleBySlug", mock.Anything, "nope").Return(nil, goerror.ErrNotFound).Once()

		_, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: "nope"})

		assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))
	})

	t.Run("EmptySlug", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.GetVehicle(t.Context(), GetVehicleInput{Slug: " "})

		assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))
	})
}

func TestAdminGetVehicle(t *testing.T) {
	t.Run("ReturnsDraft", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		v.Status = entity.StatusDraft
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()

		got, err := f.uc.AdminGetVehicle(as(salesID), AdminGetVehicleInput{ID: v.ID})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraft, got.Status)
	})

	t.Run("UnknownRole", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.AdminGetVehicle(as(404), AdminGetVehicleInput{ID: 1})

		assert.Equal(t, goerror.CodeForbidden, codeOf(t, err))
	})
}

func TestGetVehicleSEO(t *testing.T) {
	// Arrange
	f := newFixture(t)
	v := sampleVehicle()
	v.Description = "One owner. Full service history at the authorised dealer, new tyres fitted last month, " +
		"spare key and books included. Inspection welcome any day of the week."
	f.cache.On("GetVehicle", mock.Anything, v.Slug).Return(v, nil).Once()

	// Act
	seo, err := f.uc.GetVehicleSEO(t.Context(), GetVehicleInput{Slug: v.Slug})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2021 Toyota Avanza G | Gomotor Auto", seo.Title)
	assert.Equal(t, "https://gomotor.test/vehicles/"+v.Slug, seo.CanonicalURL)
	assert.LessOrEqual(t, len([]rune(seo.Description)), seoDescriptionMax)
	assert.True(t, len(seo.Description) > 3 && seo.Description[len(seo.Description)-3:] == "...")
	assert.Equal(t, v.Images[0].URL, seo.OpenGraph["og:image"])

	assert.Equal(t, "Car", seo.JSONLD["@type"])
	assert.Equal(t, "2021", seo.JSONLD["vehicleModelDate"])
	assert.Equal(t, "Gasoline", seo.JSONLD["fuelType"])
	assert.Equal(t, v.VIN, seo.JSONLD["vehicleIdentificationNumber"])

	offer, ok := seo.JSONLD["offers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "215000000", offer["price"])
	assert.Equal(t, "IDR", offer["priceCurrency"])
	assert.Equal(t, "https://schema.org/InStock", offer["availability"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghijk", 7))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
