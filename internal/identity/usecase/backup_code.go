package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/identity/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
)

type RegenerateBackupCodesInput struct {
	Code   string `validate:"required,max=32"`
	Client Client `validate:"-"`
}

// RegenerateBackupCodes replaces every unused backup code with a new set.
func (s *Usecase) RegenerateBackupCodes(ctx context.Context, in RegenerateBackupCodesInput) (*BackupCodesOutput, error) {
	ctx, span := s.startSpan(ctx, "RegenerateBackupCodes")
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

	if err := s.verifySecondFactor(ctx, admin.ID, in.Code); err != nil {
		return nil, codeFieldError(err)
	}

	plain, codes, err := s.newBackupCodes(ctx, admin.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repoDB.ReplaceBackupCodes(ctx, admin.ID, codes); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace backup codes", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishSecurity(ctx, admin, event.SecurityBackupCodesRenewed, in.Client)

	return &BackupCodesOutput{Codes: plain}, nil
}

func (s *Usecase) newBackupCodes(ctx context.Context, adminID int64) ([]string, []entity.BackupCode, error) {
	plain, err := s.mfaRecoveryCode.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate backup codes", "admin_id", adminID, "error", err)
		return nil, nil, goerror.NewServer(err)
	}

	codes := make([]entity.BackupCode, 0, len(plain))
	for _, code := range plain {
		hashed, err := s.argon2id.Hash(code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash backup code", "admin_id", adminID, "error", err)
			return nil, nil, goerror.NewServer(err)
		}

		codes = append(codes, entity.BackupCode{
			ID:      s.uid.Generate(),
			AdminID: adminID,
			Hash:    string(hashed),
		})
	}

	return plain, codes, nil
}
