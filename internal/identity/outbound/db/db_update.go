package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func (s *DB) UpdateAdminProfile(ctx context.Context, id int64, fullName, email string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAdminProfile")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(mustAffect(s.query.UpdateAdminProfile(ctx, sqlc.UpdateAdminProfileParams{
		ID:       id,
		FullName: fullName,
		Email:    email,
	})))
}

func (s *DB) UpdateAdminAvatar(ctx context.Context, id int64, avatarURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAdminAvatar")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(mustAffect(s.query.UpdateAdminAvatar(ctx, sqlc.UpdateAdminAvatarParams{
		ID:        id,
		AvatarUrl: avatarURL,
	})))
}

func (s *DB) UpdatePassword(ctx context.Context, adminID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(mustAffect(s.query.UpdateAdminPassword(ctx, sqlc.UpdateAdminPasswordParams{
		AdminID:      adminID,
		PasswordHash: hash,
	})))
}

func (s *DB) TouchMFA(ctx context.Context, adminID int64) (err error) {
	ctx, span := s.startSpan(ctx, "TouchMFA")
	defer func() { s.endSpan(span, err) }()

	return s.mapError(s.query.TouchAdminMFA(ctx, adminID))
}

// UseBackupCode reports false when the code was consumed concurrently.
func (s *DB) UseBackupCode(ctx context.Context, id, adminID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UseBackupCode")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.MarkBackupCodeUsed(ctx, sqlc.MarkBackupCodeUsedParams{ID: id, AdminID: adminID})
	if err != nil {
		return false, s.mapError(err)
	}

	return n == 1, nil
}
