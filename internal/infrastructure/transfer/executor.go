package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dezh-tech/immortal/pkg/logger"

	"medihub/internal/domain/entity"
	derrors "medihub/internal/domain/errors"
)

const (
	DefaultTimeout = 5 * time.Minute

	maxErrorBodyBytes = 4096
	opTransfer        = "transfer"
)

var (
	errTimedOut = errors.New("transfer deadline exceeded")
	errAborted  = errors.New("transfer aborted by caller")
)

// Executor PUTs files to presigned URLs.
type Executor struct {
	httpClient *http.Client
	timeout    time.Duration
}

func New(cfg Config) *Executor {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Executor{
		// no client timeout, the deadline lives on the request context
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// Transfer uploads file to writeURL and blocks until the storage service
// answers.
func (e *Executor) Transfer(ctx context.Context, file *entity.File, writeURL string,
	onProgress entity.ProgressFunc,
) error {
	return e.Start(ctx, file, writeURL, onProgress).Wait()
}

// Start begins the upload in the background and returns its handle.
func (e *Executor) Start(ctx context.Context, file *entity.File, writeURL string,
	onProgress entity.ProgressFunc,
) *Handle {
	ctx, cancelTimeout := context.WithTimeoutCause(ctx, e.timeout, errTimedOut)
	ctx, cancel := context.WithCancelCause(ctx)

	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		defer cancelTimeout()
		defer cancel(nil)

		h.err = e.put(ctx, h, file, writeURL, onProgress)
	}()

	return h
}

func (e *Executor) put(ctx context.Context, h *Handle, file *entity.File, writeURL string,
	onProgress entity.ProgressFunc,
) error {
	if file == nil || file.Content == nil {
		return &derrors.InvalidInputError{Field: "file", Reason: "no content to transfer"}
	}

	body := &progressReader{
		reader:     file.Reader(),
		total:      file.Size,
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, writeURL, body)
	if err != nil {
		return fmt.Errorf("create transfer request: %w", err)
	}
	if file.Size > 0 {
		req.ContentLength = file.Size
	} else {
		req.Body = http.NoBody
		req.ContentLength = 0
	}
	if file.Type != "" {
		req.Header.Set("Content-Type", file.Type)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return e.classify(ctx, h, body, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("storage rejected transfer", "status", resp.StatusCode, "file", file.Name)

		return &derrors.TransferFailedError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	return nil
}

func (e *Executor) classify(ctx context.Context, h *Handle, body *progressReader, err error) error {
	if ctx.Err() == nil {
		if body.readErr != nil {
			return fmt.Errorf("read file: %w", body.readErr)
		}

		return &derrors.NetworkUnavailableError{Op: opTransfer, Err: err}
	}

	h.cancelled.Store(true)

	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, errTimedOut):
		return &derrors.TransferTimeoutError{Timeout: e.timeout}
	case errors.Is(cause, context.DeadlineExceeded):
		return &derrors.TransferTimeoutError{}
	default:
		return &derrors.TransferAbortedError{Err: cause}
	}
}
