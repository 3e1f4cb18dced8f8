package controlplane

import (
	"context"
	"errors"

	"medihub/internal/domain/dto"
	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
)

const opQuery = "medihub-query-handler"

// Ask forwards a question to the question-answer endpoint.
func (c *Client) Ask(ctx context.Context, question string) (entity.Answer, error) {
	var response dto.QueryResponse
	if err := c.postJSON(ctx, QueryPath, dto.QueryRequest{Question: question}, &response, opQuery); err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			return entity.Answer{}, &derrors.QueryRequestError{Status: statusErr.status, Body: statusErr.body}
		}

		return entity.Answer{}, err
	}

	return entity.Answer{Text: response.Answer}, nil
}
