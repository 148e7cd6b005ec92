package usecase

import (
	"errors"
	"testing"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_ListDeliveries(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {
		f := newFixture(t, testConfig)

		_, err := f.uc.ListDeliveries(t.Context(), ListDeliveriesInput{})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("SalesIsForbidden", func(t *testing.T) {
		f := newFixture(t, testConfig)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{AdminID: 2, Stage: jwt.StageFull})

		_, err := f.uc.ListDeliveries(ctx, ListDeliveriesInput{})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, goerror.CodeForbidden, gerr.Code())
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		f := newFixture(t, testConfig)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{AdminID: 1, Stage: jwt.StageFull})

		_, err := f.uc.ListDeliveries(ctx, ListDeliveriesInput{Status: "bounced"})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Contains(t, gerr.Fields(), "status")
	})

	t.Run("ClampsPaging", func(t *testing.T) {
		f := newFixture(t, testConfig)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{AdminID: 1, Stage: jwt.StageFull})
		rows := []entity.Delivery{{ID: 5, Status: entity.DeliveryStatusFailed}}
		f.db.On("ListDeliveries", mock.Anything, entity.DeliveryFilter{Status: entity.DeliveryStatusFailed, Page: 1, Size: 100}).
			Return(rows, int64(1), nil)

		out, err := f.uc.ListDeliveries(ctx, ListDeliveriesInput{Status: " Failed ", Page: -3, Size: 500})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Page)
		assert.Equal(t, 100, out.Size)
		assert.Equal(t, int64(1), out.Total)
		assert.Equal(t, rows, out.Deliveries)
	})

	t.Run("PageTooLarge", func(t *testing.T) {
		f := newFixture(t, testConfig)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{AdminID: 1, Stage: jwt.StageFull})

		_, err := f.uc.ListDeliveries(ctx, ListDeliveriesInput{Page: 1_000_000_000, Size: 50})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Contains(t, gerr.Fields(), "page")
		f.db.AssertNotCalled(t, "ListDeliveries", mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		f := newFixture(t, testConfig)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{AdminID: 1, Stage: jwt.StageFull})
		f.db.On("ListDeliveries", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))

		_, err := f.uc.ListDeliveries(ctx, ListDeliveriesInput{})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, goerror.CodeInternal, gerr.Code())
	})
}
