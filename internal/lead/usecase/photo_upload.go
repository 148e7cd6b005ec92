package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/upload"
)

const defaultPhotoMaxBytes = 8 << 20

type UploadPhotoInput struct {
	File io.Reader
}

type UploadPhotoOutput struct {
	URL string
	Key string
}

// UploadLeadPhoto stores a seller's photo and returns the URL to submit
// with the sell lead.
func (s *Usecase) UploadLeadPhoto(ctx context.Context, in UploadPhotoInput) (*UploadPhotoOutput, error) {
	ctx, span := s.startSpan(ctx, "UploadLeadPhoto")
	defer span.End()

	maxBytes := s.cfg.GetInt64("modules.lead.photo_max_bytes")
	if maxBytes <= 0 {
		maxBytes = defaultPhotoMaxBytes
	}

	img, err := upload.ReadImage(in.File, maxBytes)
	switch {
	case errors.Is(err, upload.ErrEmpty):
		return nil, goerror.NewInvalidInput(nil, "file", "file is required")
	case errors.Is(err, upload.ErrTooLarge):
		return nil, goerror.NewInvalidInput(nil, "file", "file exceeds the size limit")
	case errors.Is(err, upload.ErrUnsupportedType):
		return nil, goerror.NewInvalidInput(nil, "file", "file must be jpeg, png or webp")
	case err != nil:
		slog.ErrorContext(ctx, "failed to read lead photo", "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.lead.photo_bucket"))
	baseURL := strings.TrimRight(s.cfg.GetString("modules.lead.photo_base_url"), "/")
	key := "leads/" + s.clock.Now().UTC().Format("2006/01") + "/" + s.uuid.Generate() + img.Ext

	if _, err := s.storage.Put(ctx, bucket, key, img.Reader(), storage.PutOptions{
		Size:        img.Size(),
		ContentType: img.ContentType,
		Metadata:    map[string]string{"source": "sell_lead"},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload lead photo", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UploadPhotoOutput{URL: baseURL + "/" + key, Key: key}, nil
}
