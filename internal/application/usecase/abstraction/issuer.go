package abstraction

import (
	"context"

	"medihub/internal/domain/dto"
)

// Issuer mints write credentials on the control plane side.
type Issuer interface {
	Issue(ctx context.Context, request dto.PresignedURLRequest) (dto.PresignedURLResponse, int, error)
}
