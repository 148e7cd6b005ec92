package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

// CreateAdmin stores the account and its password hash together.
func (s *DB) CreateAdmin(ctx context.Context, admin entity.Admin, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAdmin")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.CreateAdmin(ctx, sqlc.CreateAdminParams{
			ID:       admin.ID,
			Email:    admin.Email,
			FullName: admin.FullName,
			Status:   string(admin.Status),
		}); err != nil {
			return err
		}

		return q.CreateAdminCredential(ctx, sqlc.CreateAdminCredentialParams{
			AdminID:      admin.ID,
			PasswordHash: hash,
		})
	})
}
