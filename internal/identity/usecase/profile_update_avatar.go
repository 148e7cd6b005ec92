package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/upload"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const defaultAvatarMaxBytes = 2 << 20

type UpdateAvatarInput struct {
	File io.Reader
}

func (s *Usecase) UpdateAvatar(ctx context.Context, in UpdateAvatarInput) (*Profile, error) {
	ctx, span := s.startSpan(ctx, "UpdateAvatar")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityProfile, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	admin, err := s.activeAdmin(ctx, clm.AdminID)
	if err != nil {
		return nil, err
	}

	maxBytes := s.cfg.GetInt64("modules.identity.avatar_max_bytes")
	if maxBytes <= 0 {
		maxBytes = defaultAvatarMaxBytes
	}

	img, err := upload.ReadImage(in.File, maxBytes)
	if err != nil {
		return nil, avatarError(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.identity.avatar_bucket"))
	baseURL := strings.TrimRight(s.cfg.GetString("modules.identity.avatar_base_url"), "/")
	key := "avatars/" + strconv.FormatInt(admin.ID, 10) + "/" + s.uuid.Generate() + img.Ext

	if _, err := s.storage.Put(ctx, bucket, key, img.Reader(), storage.PutOptions{
		Size:         img.Size(),
		ContentType:  img.ContentType,
		CacheControl: "public, max-age=86400",
		Metadata:     map[string]string{"admin_id": strconv.FormatInt(admin.ID, 10)},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload admin avatar", "admin_id", admin.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAdminAvatar(ctx, admin.ID, baseURL+"/"+key); err != nil {
		slog.ErrorContext(ctx, "failed to repo update admin avatar", "admin_id", admin.ID, "error", err)
		s.removeAvatar(ctx, bucket, key)
		return nil, goerror.NewServer(err)
	}

	if old, ok := strings.CutPrefix(admin.AvatarURL, baseURL+"/"); ok {
		s.removeAvatar(ctx, bucket, old)
	}

	return s.profile(ctx, admin.ID)
}

func (s *Usecase) removeAvatar(ctx context.Context, bucket, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, bucket, key); err != nil {
		slog.WarnContext(ctx, "failed to delete avatar object", "bucket", bucket, "key", key, "error", err)
	}
}

func avatarError(err error) error {
	switch {
	case errors.Is(err, upload.ErrEmpty):
		return goerror.NewInvalidInput(nil, "avatar", "avatar file is required")
	case errors.Is(err, upload.ErrTooLarge):
		return goerror.NewInvalidInput(nil, "avatar", "avatar exceeds the size limit")
	case errors.Is(err, upload.ErrUnsupportedType):
		return goerror.NewInvalidInput(nil, "avatar", "avatar must be jpeg, png or webp")
	default:
		return goerror.NewServer(err)
	}
}
