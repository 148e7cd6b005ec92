package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
)

type LoginTwoFactorInput struct {
	Code string `validate:"required,max=32"`
}

// LoginTwoFactor completes a login that is waiting on the second factor.
// The code is either a TOTP or one of the admin's backup codes.
func (s *Usecase) LoginTwoFactor(ctx context.Context, in LoginTwoFactorInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginTwoFactor")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.Stage != jwt.StageMFA {
		return nil, errAuthRequired
	}

	if err := s.checkThrottle(ctx, clm.Email); err != nil {
		return nil, err
	}

	admin, err := s.activeAdmin(ctx, clm.AdminID)
	if err != nil {
		return nil, err
	}

	if err := s.verifySecondFactor(ctx, admin.ID, in.Code); err != nil {
		if errors.Is(err, errInvalidSecondStep) {
			s.recordFailure(ctx, clm.Email)
		}
		return nil, err
	}

	s.resetThrottle(ctx, clm.Email)

	if err := s.revokeCurrent(ctx, clm); err != nil {
		return nil, err
	}

	tok, err := s.issue(ctx, admin.ID, admin.Email, jwt.StageFull)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{State: entity.LoginStateAuthenticated, Token: *tok}, nil
}

func isTOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}

	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}

// verifySecondFactor returns errInvalidSecondStep for any code that does
// not check out, including when the admin has no factor enabled.
func (s *Usecase) verifySecondFactor(ctx context.Context, adminID int64, code string) error {
	m, err := s.repoDB.GetMFA(ctx, adminID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin has no mfa factor", "admin_id", adminID)
		return errInvalidSecondStep
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get mfa", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}

	code = strings.TrimSpace(code)
	switch {
	case isTOTPCode(code):
		if err := s.verifyTOTP(ctx, m, code); err != nil {
			return err
		}
	case mfa.LooksLikeRecoveryCode(code):
		if err := s.verifyBackupCode(ctx, adminID, mfa.NormalizeRecoveryCode(code)); err != nil {
			return err
		}
	default:
		slog.WarnContext(ctx, "second factor code has unknown shape", "admin_id", adminID)
		return errInvalidSecondStep
	}

	if err := s.repoDB.TouchMFA(ctx, adminID); err != nil {
		slog.ErrorContext(ctx, "failed to repo touch mfa", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) verifyTOTP(ctx context.Context, m *entity.MFA, code string) error {
	secret, err := s.mfaEncryptor.Decrypt(m.Secret, mfa.Scope{AdminID: m.AdminID, Purpose: mfa.PurposeOTPSeed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "admin_id", m.AdminID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.totp.Validate(code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code", "admin_id", m.AdminID)
		return errInvalidSecondStep
	}

	return nil
}

func (s *Usecase) verifyBackupCode(ctx context.Context, adminID int64, code string) error {
	codes, err := s.repoDB.ListUnusedBackupCodes(ctx, adminID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list backup codes", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}

	var match *entity.BackupCode
	for i := range codes {
		if s.argon2id.Verify(codes[i].Hash, code) {
			match = &codes[i]
			break
		}
	}

	if match == nil {
		slog.WarnContext(ctx, "backup code not match", "admin_id", adminID)
		return errInvalidSecondStep
	}

	ok, err := s.repoDB.UseBackupCode(ctx, match.ID, adminID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo use backup code", "admin_id", adminID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "backup code already used", "admin_id", adminID)
		return errInvalidSecondStep
	}

	return nil
}
