package db

import (
	"context"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/sqlc"
)

func toAdmin(row sqlc.Admin) *entity.Admin {
	return &entity.Admin{
		ID:        row.ID,
		Email:     row.Email,
		FullName:  row.FullName,
		AvatarURL: row.AvatarUrl,
		Status:    entity.AdminStatus(row.Status),
		CreatedAt: timeOf(row.CreatedAt),
		UpdatedAt: timeOf(row.UpdatedAt),
	}
}

func (s *DB) GetAdminByID(ctx context.Context, id int64) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByID")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetAdminByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toAdmin(row), nil
}

func (s *DB) GetAdminByEmail(ctx context.Context, email string) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminByEmail")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return toAdmin(row), nil
}

func (s *DB) GetAdminLoginInfo(ctx context.Context, email string) (_ *entity.LoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetAdminLoginInfo")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetAdminLoginInfo(ctx, email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.LoginInfo{
		ID:           row.ID,
		Email:        row.Email,
		Status:       entity.AdminStatus(row.Status),
		PasswordHash: row.PasswordHash,
		HasMFA:       row.HasMfa,
	}, nil
}

func (s *DB) GetPasswordHash(ctx context.Context, adminID int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetPasswordHash")
	defer func() { s.endSpan(span, err) }()

	hash, err := s.query.GetAdminPasswordHash(ctx, adminID)
	if err != nil {
		return "", s.mapError(err)
	}

	return hash, nil
}

func (s *DB) GetMFA(ctx context.Context, adminID int64) (_ *entity.MFA, err error) {
	ctx, span := s.startSpan(ctx, "GetMFA")
	defer func() { s.endSpan(span, err) }()

	row, err := s.query.GetAdminMFA(ctx, adminID)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &entity.MFA{
		AdminID:    row.AdminID,
		Secret:     row.Secret,
		KeyVersion: row.KeyVersion,
		EnabledAt:  timeOf(row.EnabledAt),
		LastUsedAt: timeOf(row.LastUsedAt),
	}, nil
}

func (s *DB) ListUnusedBackupCodes(ctx context.Context, adminID int64) (_ []entity.BackupCode, err error) {
	ctx, span := s.startSpan(ctx, "ListUnusedBackupCodes")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.ListUnusedBackupCodes(ctx, adminID)
	if err != nil {
		return nil, s.mapError(err)
	}

	codes := make([]entity.BackupCode, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, entity.BackupCode{ID: row.ID, AdminID: row.AdminID, Hash: row.CodeHash})
	}

	return codes, nil
}
