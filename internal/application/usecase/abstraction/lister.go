package abstraction

import (
	"context"

	"medihub/internal/domain/dto"
	"medihub/internal/domain/repository/database"
)

type Lister interface {
	ListDocuments(ctx context.Context, filter database.DocumentFilter) ([]dto.DocumentDescriptor, int, error)
}
