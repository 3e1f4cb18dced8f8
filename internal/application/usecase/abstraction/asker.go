package abstraction

import (
	"context"

	"medihub/internal/domain/entity"
)

type Asker interface {
	Ask(ctx context.Context, question string) (entity.Answer, error)
}
