package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func insertBackupCodes(ctx context.Context, q *sqlc.Queries, codes []entity.BackupCode) error {
	for _, c := range codes {
		if err := q.CreateAdminBackupCode(ctx, sqlc.CreateAdminBackupCodeParams{
			ID:       c.ID,
			AdminID:  c.AdminID,
			CodeHash: c.Hash,
		}); err != nil {
			return err
		}
	}
	return nil
}

// EnableMFA stores the factor and a fresh set of backup codes. An existing
// factor makes it fail with goerror.ErrConflict.
func (s *DB) EnableMFA(ctx context.Context, m entity.MFA, codes []entity.BackupCode) (err error) {
	ctx, span := s.startSpan(ctx, "EnableMFA")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.CreateAdminMFA(ctx, sqlc.CreateAdminMFAParams{
			AdminID:    m.AdminID,
			Secret:     m.Secret,
			KeyVersion: m.KeyVersion,
		}); err != nil {
			return err
		}

		if err := q.DeleteAdminBackupCodes(ctx, m.AdminID); err != nil {
			return err
		}

		return insertBackupCodes(ctx, q, codes)
	})
}

func (s *DB) ReplaceBackupCodes(ctx context.Context, adminID int64, codes []entity.BackupCode) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceBackupCodes")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.DeleteAdminBackupCodes(ctx, adminID); err != nil {
			return err
		}

		return insertBackupCodes(ctx, q, codes)
	})
}

// DisableMFA removes the factor and every backup code. A missing factor is
// goerror.ErrNotFound.
func (s *DB) DisableMFA(ctx context.Context, adminID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DisableMFA")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.DeleteAdminBackupCodes(ctx, adminID); err != nil {
			return err
		}

		return mustAffect(q.DeleteAdminMFA(ctx, adminID))
	})
}
