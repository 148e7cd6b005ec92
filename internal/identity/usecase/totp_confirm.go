package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type EnableTwoFactorInput struct {
	Code   string `validate:"required,len=6,numeric"`
	Client Client `validate:"-"`
}

// BackupCodesOutput holds plaintext backup codes. They are shown once and
// only their hashes are kept.
type BackupCodesOutput struct {
	Codes []string
}

func (s *Usecase) EnableTwoFactor(ctx context.Context, in EnableTwoFactorInput) (*BackupCodesOutput, error) {
	ctx, span := s.startSpan(ctx, "EnableTwoFactor")
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

	pending, err := s.repoCache.GetPendingTOTP(ctx, admin.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("No two-factor setup in progress", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get pending totp", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	secret, err := s.mfaEncryptor.Decrypt(pending, mfa.Scope{AdminID: admin.ID, Purpose: mfa.PurposeOTPPending})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt pending totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code on enable", "admin_id", admin.ID)
		return nil, goerror.NewInvalidInput(nil, "code", "invalid two-factor code")
	}

	sealed, err := s.mfaEncryptor.Encrypt(secret, mfa.Scope{AdminID: admin.ID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	version, ok := mfa.KeyVersion(sealed)
	if !ok {
		slog.ErrorContext(ctx, "sealed totp secret carries no key version", "admin_id", admin.ID)
		return nil, goerror.NewServer(mfa.ErrShortCiphertext)
	}

	plain, codes, err := s.newBackupCodes(ctx, admin.ID)
	if err != nil {
		return nil, err
	}

	err = s.repoDB.EnableMFA(ctx, entity.MFA{AdminID: admin.ID, Secret: sealed, KeyVersion: int16(version)}, codes)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errTwoFactorEnabled
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo enable mfa", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoCache.DeletePendingTOTP(ctx, admin.ID); err != nil {
		slog.WarnContext(ctx, "failed to repo delete pending totp", "admin_id", admin.ID, "error", err)
	}

	s.publishSecurity(ctx, admin, event.SecurityTwoFactorEnabled, in.Client)

	return &BackupCodesOutput{Codes: plain}, nil
}
