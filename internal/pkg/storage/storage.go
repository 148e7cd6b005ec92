// Package storage puts and removes objects in S3, MinIO or Google Cloud
// Storage buckets behind one interface.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

type Storage interface {
	io.Closer
	Put(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	Delete(ctx context.Context, bucket, key string) error
}

type PutOptions struct {
	// Size is the content length, or -1 when unknown.
	Size         int64
	ContentType  string
	CacheControl string
	Metadata     map[string]string
}

type ObjectInfo struct {
	Bucket string
	Key    string
	Size   int64
	ETag   string
}

const (
	DriverS3     = "s3"
	DriverMinIO  = "minio"
	DriverGCS    = "gcs"
	DriverMemory = "memory"
)

type FactoryOptions struct {
	S3    S3Options
	MinIO MinIOOptions
	GCS   GCSOptions
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
