package controlplane

import (
	"context"

	"medihub/internal/domain/entity"
)

type QuestionAnswerer interface {
	Ask(ctx context.Context, question string) (entity.Answer, error)
}
