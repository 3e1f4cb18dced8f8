package transfer

import (
	"context"
	"sync/atomic"
)

// Handle controls one in-flight transfer.
type Handle struct {
	cancel    context.CancelCauseFunc
	done      chan struct{}
	err       error
	cancelled atomic.Bool
}

// Abort cancels the transfer. Wait then returns a TransferAbortedError unless
// the transfer already finished.
func (h *Handle) Abort() {
	h.cancel(errAborted)
}

// Wait blocks until the transfer finishes and returns its outcome.
func (h *Handle) Wait() error {
	<-h.done

	return h.err
}

// Done is closed when the transfer finishes.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancelled reports whether the request was torn down before completing,
// by Abort, by the caller context, or by the transfer timeout.
func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}
