package usecase

import (
	"context"
	"strings"

	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
	"medihub/internal/domain/repository/controlplane"
)

type Asker struct {
	answerer controlplane.QuestionAnswerer
}

func NewAsker(answerer controlplane.QuestionAnswerer) *Asker {
	return &Asker{answerer: answerer}
}

func (a *Asker) Ask(ctx context.Context, question string) (entity.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return entity.Answer{}, &derrors.InvalidInputError{Field: "question", Reason: "question is required"}
	}

	return a.answerer.Ask(ctx, question)
}
