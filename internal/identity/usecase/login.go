package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
)

const (
	defaultLoginMaxAttempts = 5
	defaultLoginLock        = 15 * time.Minute
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginOutput is a session token and the state it puts the client in.
type LoginOutput struct {
	State entity.LoginState
	Token jwt.Token
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkThrottle(ctx, in.Email); err != nil {
		return nil, err
	}

	admin, err := s.repoDB.GetAdminLoginInfo(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "admin account not found", "email", in.Email)
		s.recordFailure(ctx, in.Email)
		return nil, errInvalidCredentials
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get admin login info", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(admin.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "admin password not match", "admin_id", admin.ID)
		s.recordFailure(ctx, in.Email)
		return nil, errInvalidCredentials
	}

	if !admin.Status.Active() {
		slog.WarnContext(ctx, "admin account is disabled", "admin_id", admin.ID)
		s.recordFailure(ctx, in.Email)
		return nil, errInvalidCredentials
	}

	s.resetThrottle(ctx, in.Email)

	if admin.HasMFA {
		tok, err := s.issue(ctx, admin.ID, admin.Email, jwt.StageMFA)
		if err != nil {
			return nil, err
		}
		return &LoginOutput{State: entity.LoginStateRequires2FA, Token: *tok}, nil
	}

	tok, err := s.issue(ctx, admin.ID, admin.Email, jwt.StageFull)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{State: entity.LoginStateAuthenticated, Token: *tok}, nil
}

func (s *Usecase) checkThrottle(ctx context.Context, email string) error {
	maxAttempts := s.cfg.GetInt64("modules.identity.login_max_attempts")
	if maxAttempts <= 0 {
		maxAttempts = defaultLoginMaxAttempts
	}

	n, err := s.repoCache.LoginFailures(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get login failures", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if n >= maxAttempts {
		slog.WarnContext(ctx, "login throttled", "email", email, "failures", n)
		return errTooManyAttempts
	}

	return nil
}

func (s *Usecase) recordFailure(ctx context.Context, email string) {
	window := s.cfg.GetMinute("modules.identity.login_lock_minutes")
	if window <= 0 {
		window = defaultLoginLock
	}

	if _, err := s.repoCache.RecordLoginFailure(ctx, email, window); err != nil {
		slog.ErrorContext(ctx, "failed to repo record login failure", "email", email, "error", err)
	}
}

func (s *Usecase) resetThrottle(ctx context.Context, email string) {
	if err := s.repoCache.ResetLoginFailures(ctx, email); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset login failures", "email", email, "error", err)
	}
}
