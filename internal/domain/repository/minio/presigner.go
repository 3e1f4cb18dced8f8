package minio

import "context"

type Presigner interface {
	PresignPut(ctx context.Context, objectKey string) (url string, bucket string, err error)
}
