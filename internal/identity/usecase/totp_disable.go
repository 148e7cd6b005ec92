package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type DisableTwoFactorInput struct {
	CurrentPassword string `validate:"required"`
	Code            string `validate:"required,max=32"`
	Client          Client `validate:"-"`
}

func (s *Usecase) DisableTwoFactor(ctx context.Context, in DisableTwoFactorInput) error {
	ctx, span := s.startSpan(ctx, "DisableTwoFactor")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityProfile, constant.PermActWrite)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	admin, err := s.activeAdmin(ctx, clm.AdminID)
	if err != nil {
		return err
	}

	ok, err := s.verifyPassword(ctx, admin.ID, in.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		slog.WarnContext(ctx, "current password mismatch", "admin_id", admin.ID)
		return goerror.NewInvalidInput(nil, "current_password", "current password is incorrect")
	}

	if err := s.verifySecondFactor(ctx, admin.ID, in.Code); err != nil {
		return codeFieldError(err)
	}

	err = s.repoDB.DisableMFA(ctx, admin.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Two-factor authentication is not enabled", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo disable mfa", "admin_id", admin.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.publishSecurity(ctx, admin, event.SecurityTwoFactorDisabled, in.Client)

	return nil
}

// codeFieldError reports a rejected second factor as a field error. The
// admin is already logged in, so 401 would wrongly end the session client-side.
func codeFieldError(err error) error {
	if errors.Is(err, errInvalidSecondStep) {
		return goerror.NewInvalidInput(nil, "code", "invalid two-factor code")
	}
	return err
}
