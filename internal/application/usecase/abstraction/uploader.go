package abstraction

import (
	"context"

	"medihub/internal/domain/entity"
)

type Uploader interface {
	Upload(ctx context.Context, file *entity.File, meta entity.UploadMetadata,
		onProgress entity.ProgressFunc) (string, error)
}
