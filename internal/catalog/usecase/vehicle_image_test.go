package usecase

import (
	"bytes"
	"testing"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadVehicleImage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		v := sampleVehicle()
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("NextImageSlot", mock.Anything, v.ID).Return(1, 2, nil).Once()
		f.db.On("CreateVehicleImage", mock.Anything, mock.MatchedBy(func(img entity.VehicleImage) bool {
			return img.Key == "vehicles/99/0190a1b2-c3d4.png" && img.Position == 2
		})).Return(nil).Once()
		f.cache.On("DeleteVehicle", mock.Anything, v.Slug).Return(nil).Once()

		// Act
		img, err := f.uc.UploadVehicleImage(as(adminID), UploadVehicleImageInput{VehicleID: v.ID, File: bytes.NewReader(pngHeader)})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.gomotor.test/vehicles/99/0190a1b2-c3d4.png", img.URL)
		data, ct, ok := f.storage.Object("media", img.Key)
		require.True(t, ok)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("LimitReached", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("NextImageSlot", mock.Anything, v.ID).Return(2, 3, nil).Once()

		_, err := f.uc.UploadVehicleImage(as(adminID), UploadVehicleImageInput{VehicleID: v.ID, File: bytes.NewReader(pngHeader)})

		assert.Equal(t, goerror.CodeInvalidInput, codeOf(t, err))
	})

	t.Run("NotAnImage", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("NextImageSlot", mock.Anything, v.ID).Return(0, 1, nil).Once()

		_, err := f.uc.UploadVehicleImage(as(adminID), UploadVehicleImageInput{VehicleID: v.ID, File: bytes.NewReader([]byte("%PDF-1.4"))})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "image must be jpeg, png or webp", gerr.Fields()["image"])
	})

	t.Run("TooLarge", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("NextImageSlot", mock.Anything, v.ID).Return(0, 1, nil).Once()

		big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...)
		_, err := f.uc.UploadVehicleImage(as(adminID), UploadVehicleImageInput{VehicleID: v.ID, File: bytes.NewReader(big)})

		assert.Equal(t, goerror.CodeInvalidInput, codeOf(t, err))
	})
}

func TestDeleteVehicleImage(t *testing.T) {
	t.Run("RemovesObject", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		_, err := f.storage.Put(t.Context(), "media", "vehicles/99/a.png", bytes.NewReader(pngHeader), storage.PutOptions{Size: -1})
		require.NoError(t, err)

		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("DeleteVehicleImage", mock.Anything, v.ID, int64(1)).
			Return(&entity.VehicleImage{ID: 1, VehicleID: v.ID, Key: "vehicles/99/a.png"}, nil).Once()
		f.cache.On("DeleteVehicle", mock.Anything, v.Slug).Return(nil).Once()

		require.NoError(t, f.uc.DeleteVehicleImage(as(adminID), DeleteVehicleImageInput{VehicleID: v.ID, ImageID: 1}))

		_, _, ok := f.storage.Object("media", "vehicles/99/a.png")
		assert.False(t, ok)
	})

	t.Run("UnknownImage", func(t *testing.T) {
		f := newFixture(t)
		v := sampleVehicle()
		f.db.On("GetVehicleByID", mock.Anything, v.ID).Return(v, nil).Once()
		f.db.On("DeleteVehicleImage", mock.Anything, v.ID, int64(8)).Return(nil, goerror.ErrNotFound).Once()

		err := f.uc.DeleteVehicleImage(as(adminID), DeleteVehicleImageInput{VehicleID: v.ID, ImageID: 8})

		assert.Equal(t, goerror.CodeNotFound, codeOf(t, err))
	})
}
