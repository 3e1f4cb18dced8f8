package storage

import (
	"context"

	"medihub/internal/domain/entity"
)

// Transferrer writes a file to the object behind a write credential URL.
type Transferrer interface {
	Transfer(ctx context.Context, file *entity.File, writeURL string, onProgress entity.ProgressFunc) error
}
