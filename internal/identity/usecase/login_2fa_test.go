package usecase

import (
	"testing"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_LoginTwoFactor(t *testing.T) {
	t.Run("RequiresPendingSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, _ := f.session(t, jwt.StageFull)

		// Act
		out, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: "123456"})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errAuthRequired)
	})

	t.Run("NoSession", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.LoginTwoFactor(t.Context(), LoginTwoFactorInput{Code: "123456"})

		// Assert
		assert.ErrorIs(t, err, errAuthRequired)
	})

	t.Run("TOTP", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, pending := f.session(t, jwt.StageMFA)
		secret, sealed := f.sealedSecret(t, mfa.PurposeOTPSeed)

		f.db.On("GetAdminByID", mock.Anything, int64(1)).Return(sampleAdmin(), nil)
		f.db.On("GetMFA", mock.Anything, int64(1)).Return(&entity.MFA{AdminID: 1, Secret: sealed, KeyVersion: 1}, nil)
		f.db.On("TouchMFA", mock.Anything, int64(1)).Return(nil)

		// Act
		out, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: f.code(t, secret)})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.LoginStateAuthenticated, out.State)

		clm, err := f.jwt.Verify(out.Token.Value)
		require.NoError(t, err)
		assert.Equal(t, jwt.StageFull, clm.Stage)
		assert.NotEqual(t, pending.ID, clm.ID)

		revoked, err := f.denylist.IsRevoked(t.Context(), pending.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("BackupCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, _ := f.session(t, jwt.StageMFA)
		_, sealed := f.sealedSecret(t, mfa.PurposeOTPSeed)

		hashed, err := f.argon2id.Hash("ABCD-EFGH-JKMN")
		require.NoError(t, err)

		f.db.On("GetAdminByID", mock.Anything, int64(1)).Return(sampleAdmin(), nil)
		f.db.On("GetMFA", mock.Anything, int64(1)).Return(&entity.MFA{AdminID: 1, Secret: sealed}, nil)
		f.db.On("ListUnusedBackupCodes", mock.Anything, int64(1)).Return([]entity.BackupCode{
			{ID: 70, AdminID: 1, Hash: "not-a-hash"},
			{ID: 71, AdminID: 1, Hash: string(hashed)},
		}, nil)
		f.db.On("UseBackupCode", mock.Anything, int64(71), int64(1)).Return(true, nil)
		f.db.On("TouchMFA", mock.Anything, int64(1)).Return(nil)

		// Act
		out, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: "abcd efgh jkmn"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.LoginStateAuthenticated, out.State)
	})

	t.Run("BackupCodeAlreadyUsed", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, _ := f.session(t, jwt.StageMFA)
		_, sealed := f.sealedSecret(t, mfa.PurposeOTPSeed)

		hashed, err := f.argon2id.Hash("ABCD-EFGH-JKMN")
		require.NoError(t, err)

		f.db.On("GetAdminByID", mock.Anything, int64(1)).Return(sampleAdmin(), nil)
		f.db.On("GetMFA", mock.Anything, int64(1)).Return(&entity.MFA{AdminID: 1, Secret: sealed}, nil)
		f.db.On("ListUnusedBackupCodes", mock.Anything, int64(1)).
			Return([]entity.BackupCode{{ID: 71, AdminID: 1, Hash: string(hashed)}}, nil)
		f.db.On("UseBackupCode", mock.Anything, int64(71), int64(1)).Return(false, nil)

		// Act
		_, err = f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: "ABCD-EFGH-JKMN"})

		// Assert
		assert.ErrorIs(t, err, errInvalidSecondStep)
	})

	t.Run("WrongCodeCountsAsFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, pending := f.session(t, jwt.StageMFA)
		secret, sealed := f.sealedSecret(t, mfa.PurposeOTPSeed)

		f.db.On("GetAdminByID", mock.Anything, int64(1)).Return(sampleAdmin(), nil)
		f.db.On("GetMFA", mock.Anything, int64(1)).Return(&entity.MFA{AdminID: 1, Secret: sealed}, nil)

		wrong := "000000"
		if f.code(t, secret) == wrong {
			wrong = "111111"
		}

		// Act
		out, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: wrong})

		// Assert
		assert.Nil(t, out)
		assert.ErrorIs(t, err, errInvalidSecondStep)
		assert.True(t, f.redis.Exists("identity:login:fail:admin@gomotor.test"))

		revoked, err := f.denylist.IsRevoked(t.Context(), pending.ID)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("UnknownShape", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, _ := f.session(t, jwt.StageMFA)
		_, sealed := f.sealedSecret(t, mfa.PurposeOTPSeed)

		f.db.On("GetAdminByID", mock.Anything, int64(1)).Return(sampleAdmin(), nil)
		f.db.On("GetMFA", mock.Anything, int64(1)).Return(&entity.MFA{AdminID: 1, Secret: sealed}, nil)

		// Act
		_, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: "12-34"})

		// Assert
		assert.ErrorIs(t, err, errInvalidSecondStep)
	})

	t.Run("Throttled", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		ctx, _ := f.session(t, jwt.StageMFA)
		require.NoError(t, f.redis.Set("identity:login:fail:admin@gomotor.test", "5"))

		// Act
		_, err := f.uc.LoginTwoFactor(ctx, LoginTwoFactorInput{Code: "123456"})

		// Assert
		assert.Equal(t, goerror.CodeTooManyRequest, codeOf(t, err))
	})
}
