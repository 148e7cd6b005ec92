package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,password"`
	Client          Client `validate:"-"`
}

// ChangePassword replaces the password and rotates the session: the token
// used for the request is revoked and a fresh one is returned.
func (s *Usecase) ChangePassword(ctx context.Context, in ChangePasswordInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "ChangePassword")
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

	if in.NewPassword == in.CurrentPassword {
		return nil, goerror.NewInvalidInput(nil, "new_password", "new password must differ from the current one")
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, admin.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.revokeCurrent(ctx, clm); err != nil {
		return nil, err
	}

	tok, err := s.issue(ctx, admin.ID, admin.Email, jwt.StageFull)
	if err != nil {
		return nil, err
	}

	s.publishSecurity(ctx, admin, event.SecurityPasswordChanged, in.Client)

	return &LoginOutput{State: entity.LoginStateAuthenticated, Token: *tok}, nil
}
