package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
)

type CreateAdminInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=2,max=100"`
	Role     string `validate:"required,oneof=admin sales"`
}

// CreateAdmin bootstraps an account from the command line, so it runs
// without a session.
func (s *Usecase) CreateAdmin(ctx context.Context, in CreateAdminInput) (*entity.Admin, error) {
	ctx, span := s.startSpan(ctx, "CreateAdmin")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hashed, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	admin := entity.Admin{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		FullName:  in.FullName,
		Status:    entity.AdminStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repoDB.CreateAdmin(ctx, admin, string(hashed))
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "admin account already exists", "email", in.Email)
		return nil, errEmailTaken
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create admin", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.enforcer.AddGroupingPolicy(subject(admin.ID), in.Role); err != nil {
		slog.ErrorContext(ctx, "failed to assign admin role", "admin_id", admin.ID, "role", in.Role, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &admin, nil
}
