package minio

import (
	"context"
	"time"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/minio/minio-go/v7"
)

const DefaultPresignExpiry = 15 * time.Minute

// Presigner mints time-limited PUT URLs for single objects in one bucket.
type Presigner struct {
	minioClient *minio.Client
	bucket      string
	expiry      time.Duration
}

func NewPresigner(minioClient *minio.Client, cfg *PresignerConfig) *Presigner {
	expiry := time.Duration(cfg.Expiry) * time.Second
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	return &Presigner{
		minioClient: minioClient,
		bucket:      cfg.Bucket,
		expiry:      expiry,
	}
}

func (p *Presigner) PresignPut(ctx context.Context, objectKey string) (string, string, error) {
	u, err := p.minioClient.PresignedPutObject(ctx, p.bucket, objectKey, p.expiry)
	if err != nil {
		logger.Error("failed to presign put object", "bucket", p.bucket, "key", objectKey, "err", err)

		return "", "", err
	}

	return u.String(), p.bucket, nil
}
