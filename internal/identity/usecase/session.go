package usecase

import (
	"context"
	"errors"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
)

type SessionOutput struct {
	State entity.LoginState
	// Admin is set only for a completed login.
	Admin *Profile
}

func (s *Usecase) Session(ctx context.Context) (*SessionOutput, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	switch {
	case clm == nil:
		return &SessionOutput{State: entity.LoginStateAnonymous}, nil
	case clm.Stage == jwt.StageMFA:
		return &SessionOutput{State: entity.LoginStateRequires2FA}, nil
	}

	p, err := s.profile(ctx, clm.AdminID)
	if errors.Is(err, errAuthRequired) {
		return &SessionOutput{State: entity.LoginStateAnonymous}, nil
	}
	if err != nil {
		return nil, err
	}

	return &SessionOutput{State: entity.LoginStateAuthenticated, Admin: p}, nil
}
