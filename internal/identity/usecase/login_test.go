package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_Login(t *testing.T) {
	loginInfo := func(f *fixture, hasMFA bool, status entity.AdminStatus) *entity.LoginInfo {
		return &entity.LoginInfo{
			ID:           1,
			Email:        "admin@gomotor.test",
			Status:       status,
			PasswordHash: f.hashed,
			HasMFA:       hasMFA,
		}
	}

	t.Run("ValidationError", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "not-an-email", Password: ""})

		// Assert
		assert.Nil(t, out)
		assert.Equal(t, goerror.CodeInvalidInput, codeOf(t, err))
	})

	t.Run("Authenticated", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(loginInfo(f, false, entity.AdminStatusActive), nil)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "  Admin@GoMotor.test ", Password: testPassword})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.LoginStateAuthenticated, out.State)

		clm, err := f.jwt.Verify(out.Token.Value)
		require.NoError(t, err)
		assert.Equal(t, jwt.StageFull, clm.Stage)
		assert.Equal(t, int64(1), clm.AdminID)
	})

	t.Run("RequiresSecondFactor", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(loginInfo(f, true, entity.AdminStatusActive), nil)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: testPassword})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.LoginStateRequires2FA, out.State)

		clm, err := f.jwt.Verify(out.Token.Value)
		require.NoError(t, err)
		assert.Equal(t, jwt.StageMFA, clm.Stage)
		assert.Equal(t, f.clock.Now().Add(5*time.Minute).Unix(), clm.ExpiresAt.Unix())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(loginInfo(f, false, entity.AdminStatusActive), nil)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: "wrong-password"})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errInvalidCredentials)
		n, err := f.redis.Get("identity:login:fail:admin@gomotor.test")
		require.NoError(t, err)
		assert.Equal(t, "1", n)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "ghost@gomotor.test").
			Return(nil, goerror.ErrNotFound)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "ghost@gomotor.test", Password: testPassword})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errInvalidCredentials)
		assert.True(t, f.redis.Exists("identity:login:fail:ghost@gomotor.test"))
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(loginInfo(f, false, entity.AdminStatusDisabled), nil)

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: testPassword})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errInvalidCredentials)
	})

	t.Run("Throttled", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		require.NoError(t, f.redis.Set("identity:login:fail:admin@gomotor.test", "3"))

		// Act
		out, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: testPassword})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errTooManyAttempts)
		f.db.AssertNotCalled(t, "GetAdminLoginInfo", mock.Anything, mock.Anything)
	})

	t.Run("SuccessResetsFailures", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		require.NoError(t, f.redis.Set("identity:login:fail:admin@gomotor.test", "2"))
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(loginInfo(f, false, entity.AdminStatusActive), nil)

		// Act
		_, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: testPassword})

		// Assert
		require.NoError(t, err)
		assert.False(t, f.redis.Exists("identity:login:fail:admin@gomotor.test"))
	})

	t.Run("RepoError", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.On("GetAdminLoginInfo", mock.Anything, "admin@gomotor.test").
			Return(nil, errors.New("db down"))

		// Act
		_, err := f.uc.Login(t.Context(), LoginInput{Email: "admin@gomotor.test", Password: testPassword})

		// Assert
		assert.Equal(t, goerror.CodeInternal, codeOf(t, err))
	})
}
