package usecase

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
)

// Logout revokes the presented token, if any. Calling it without a session
// is not an error.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	return s.revokeCurrent(ctx, jwt.GetAuth(ctx))
}
