package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

// Profile is an admin as shown to themselves.
type Profile struct {
	entity.Admin
	TwoFactorEnabled bool
	Role             string
}

func (s *Usecase) profile(ctx context.Context, adminID int64) (*Profile, error) {
	admin, err := s.activeAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	p := &Profile{Admin: *admin}

	_, err = s.repoDB.GetMFA(ctx, adminID)
	switch {
	case err == nil:
		p.TwoFactorEnabled = true
	case !errors.Is(err, goerror.ErrNotFound):
		slog.ErrorContext(ctx, "failed to repo get mfa", "admin_id", adminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	roles, err := s.enforcer.GetRolesForUser(subject(adminID))
	if err != nil {
		slog.ErrorContext(ctx, "failed to get admin roles", "admin_id", adminID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if len(roles) > 0 {
		p.Role = roles[0]
	}

	return p, nil
}

func (s *Usecase) GetProfile(ctx context.Context) (*Profile, error) {
	ctx, span := s.startSpan(ctx, "GetProfile")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityProfile, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	return s.profile(ctx, clm.AdminID)
}

type UpdateProfileInput struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=254"`
}

func (s *Usecase) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*Profile, error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityProfile, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err = s.repoDB.UpdateAdminProfile(ctx, clm.AdminID, in.FullName, in.Email)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, errEmailTaken
	}
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errAuthRequired
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update admin profile", "admin_id", clm.AdminID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return s.profile(ctx, clm.AdminID)
}
