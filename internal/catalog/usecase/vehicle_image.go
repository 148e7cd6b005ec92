package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/pkg/goerror"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/upload"
	"github.com/shandysiswandi/gomotor/internal/shared/constant"
)

const (
	defaultImageMaxBytes = 8 << 20
	defaultMaxImages     = 20
)

type UploadVehicleImageInput struct {
	VehicleID int64
	File      io.Reader
}

func (s *Usecase) UploadVehicleImage(ctx context.Context, in UploadVehicleImageInput) (*entity.VehicleImage, error) {
	ctx, span := s.startSpan(ctx, "UploadVehicleImage")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite)
	if err != nil {
		return nil, err
	}

	if in.File == nil {
		return nil, goerror.NewInvalidInput(nil, "image", "image file is required")
	}

	v, err := s.vehicleByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	count, position, err := s.repoDB.NextImageSlot(ctx, v.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo next image slot", "vehicle_id", v.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	maxImages := s.cfg.GetInt("modules.catalog.max_images")
	if maxImages <= 0 {
		maxImages = defaultMaxImages
	}
	if count >= maxImages {
		return nil, goerror.NewInvalidInput(nil, "image", "vehicle already has the maximum number of images")
	}

	maxBytes := s.cfg.GetInt64("modules.catalog.image_max_bytes")
	if maxBytes <= 0 {
		maxBytes = defaultImageMaxBytes
	}

	img, err := upload.ReadImage(in.File, maxBytes)
	if err != nil {
		return nil, imageError(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.catalog.image_bucket"))
	baseURL := strings.TrimRight(s.cfg.GetString("modules.catalog.image_base_url"), "/")
	key := "vehicles/" + strconv.FormatInt(v.ID, 10) + "/" + s.uuid.Generate() + img.Ext

	_, err = s.storage.Put(ctx, bucket, key, img.Reader(), storage.PutOptions{
		Size:         img.Size(),
		ContentType:  img.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
		Metadata: map[string]string{
			"vehicle_id":  strconv.FormatInt(v.ID, 10),
			"uploaded_by": strconv.FormatInt(clm.AdminID, 10),
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload vehicle image", "vehicle_id", v.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := entity.VehicleImage{
		ID:        s.uid.Generate(),
		VehicleID: v.ID,
		URL:       baseURL + "/" + key,
		Key:       key,
		Position:  position,
	}

	if err := s.repoDB.CreateVehicleImage(ctx, out); err != nil {
		slog.ErrorContext(ctx, "failed to repo create vehicle image", "vehicle_id", v.ID, "error", err)
		s.removeObject(ctx, bucket, key)
		return nil, goerror.NewServer(err)
	}

	s.invalidate(ctx, v.Slug)

	return &out, nil
}

type DeleteVehicleImageInput struct {
	VehicleID int64
	ImageID   int64
}

func (s *Usecase) DeleteVehicleImage(ctx context.Context, in DeleteVehicleImageInput) error {
	ctx, span := s.startSpan(ctx, "DeleteVehicleImage")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCatalogVehicles, constant.PermActWrite); err != nil {
		return err
	}

	v, err := s.vehicleByID(ctx, in.VehicleID)
	if err != nil {
		return err
	}

	img, err := s.repoDB.DeleteVehicleImage(ctx, in.VehicleID, in.ImageID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Image not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete vehicle image", "vehicle_id", in.VehicleID, "image_id", in.ImageID, "error", err)
		return goerror.NewServer(err)
	}

	s.removeObject(ctx, strings.TrimSpace(s.cfg.GetString("modules.catalog.image_bucket")), img.Key)
	s.invalidate(ctx, v.Slug)

	return nil
}

func (s *Usecase) removeObject(ctx context.Context, bucket, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, bucket, key); err != nil {
		slog.WarnContext(ctx, "failed to delete object", "bucket", bucket, "key", key, "error", err)
	}
}

func imageError(err error) error {
	switch {
	case errors.Is(err, upload.ErrEmpty):
		return goerror.NewInvalidInput(nil, "image", "image file is empty")
	case errors.Is(err, upload.ErrTooLarge):
		return goerror.NewInvalidInput(nil, "image", "image exceeds the size limit")
	case errors.Is(err, upload.ErrUnsupportedType):
		return goerror.NewInvalidInput(nil, "image", "image must be jpeg, png or webp")
	default:
		return goerror.NewServer(err)
	}
}
