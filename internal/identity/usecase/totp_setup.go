package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const defaultSetupTTL = 10 * time.Minute

var errTwoFactorEnabled = goerror.NewBusiness("Two-factor authentication is already enabled", goerror.CodeConflict)

type SetupTwoFactorInput struct {
	CurrentPassword string `validate:"required"`
}

type SetupTwoFactorOutput struct {
	Secret     string
	OTPAuthURL string
}

// SetupTwoFactor starts enrollment. The secret is kept sealed in the cache
// until EnableTwoFactor proves the admin's app produces valid codes.
func (s *Usecase) SetupTwoFactor(ctx context.Context, in SetupTwoFactorInput) (*SetupTwoFactorOutput, error) {
	ctx, span := s.startSpan(ctx, "SetupTwoFactor")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityProfile, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	admin, err := s.activeAdmin(ctx, clm.AdminID)
	if err != nil {
		return nil, err
	}

	ok, err := s.verifyPassword(ctx, admin.ID, in.CurrentPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.WarnContext(ctx, "current password mismatch", "admin_id", admin.ID)
		return nil, goerror.NewInvalidInput(nil, "current_password", "current password is incorrect")
	}

	_, err = s.repoDB.GetMFA(ctx, admin.ID)
	if err == nil {
		return nil, errTwoFactorEnabled
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get mfa", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, url, err := s.totp.Generate(admin.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{AdminID: admin.ID, Purpose: mfa.PurposeOTPPending})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.identity.mfa_setup_ttl_minutes")
	if ttl <= 0 {
		ttl = defaultSetupTTL
	}

	if err := s.repoCache.SetPendingTOTP(ctx, admin.ID, sealed, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to repo set pending totp", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SetupTwoFactorOutput{Secret: secret, OTPAuthURL: url}, nil
}
