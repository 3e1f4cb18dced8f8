package controlplane

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	derrors "medihub/internal/domain/errors"
)

const maxErrorBodyBytes = 4096

// statusError carries a non-2xx answer until the caller maps it to its own
// error type.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &derrors.RequestAbortedError{Op: operation, Err: context.Cause(ctx)}
		}

		return &derrors.NetworkUnavailableError{Op: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		text := string(bytes.TrimSpace(raw))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}

		return &statusError{status: resp.StatusCode, body: text}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &derrors.InvalidResponseError{Op: operation, Err: fmt.Errorf("decode body: %w", err)}
	}

	return nil
}
