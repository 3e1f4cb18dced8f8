package minio

import (
	"context"

	"github.com/dezh-tech/immortal/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Client struct {
	MinioClient *minio.Client
}

func New(cfg *ClientConfig) (*Client, error) {
	logger.Info("connecting to minio", "endpoint", cfg.Endpoint)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		logger.Error("failed to initialize minio client", "err", err)

		return nil, err
	}

	return &Client{
		MinioClient: client,
	}, nil
}

// EnsureBucket creates the bucket unless it already exists.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.MinioClient.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.Info("creating bucket", "bucket", bucket)

	return c.MinioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}
