package database

import (
	"context"

	"medihub/internal/domain/model"
)

type Writer interface {
	Write(ctx context.Context, document *model.Document) error
}
