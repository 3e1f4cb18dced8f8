// Package errors defines the typed failures returned by the upload pipeline
// and the question-answer client.
//
// Every type is returned as a pointer and is meant to be matched with
// errors.As, so callers can tell a rejected request from an unreachable
// server or a cancelled transfer.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// InvalidInputError reports a malformed or missing upload or query field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}

	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// PayloadTooLargeError reports a file larger than the configured ceiling.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds the %d bytes limit", e.Size, e.Limit)
}

// UnsupportedMediaTypeError reports a file extension outside the allowed set.
type UnsupportedMediaTypeError struct {
	Extension string
	Allowed   []string
}

func (e *UnsupportedMediaTypeError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}

	return fmt.Sprintf("unsupported file extension %s, allowed: %s", ext, strings.Join(e.Allowed, ", "))
}

// CredentialRequestError is returned when the control plane answers the
// presigned URL request with a non-2xx status.
type CredentialRequestError struct {
	Status int
	Body   string
}

func (e *CredentialRequestError) Error() string {
	return fmt.Sprintf("credential request rejected (%d): %s", e.Status, bodyOrPlaceholder(e.Body))
}

// QueryRequestError is returned when the question-answer endpoint answers
// with a non-2xx status.
type QueryRequestError struct {
	Status int
	Body   string
}

func (e *QueryRequestError) Error() string {
	return fmt.Sprintf("query rejected (%d): %s", e.Status, bodyOrPlaceholder(e.Body))
}

// NetworkUnavailableError means no response was received at all.
type NetworkUnavailableError struct {
	Op  string
	Err error
}

func (e *NetworkUnavailableError) Error() string {
	return fmt.Sprintf("%s: cannot connect to the server: %v", e.Op, e.Err)
}

func (e *NetworkUnavailableError) Unwrap() error {
	return e.Err
}

// RequestAbortedError is returned when the caller's context ends a
// control-plane call before a response arrives.
type RequestAbortedError struct {
	Op  string
	Err error
}

func (e *RequestAbortedError) Error() string {
	return fmt.Sprintf("%s: request was aborted: %v", e.Op, e.Err)
}

func (e *RequestAbortedError) Unwrap() error {
	return e.Err
}

// InvalidResponseError is returned for a 2xx response whose body cannot be
// used.
type InvalidResponseError struct {
	Op  string
	Err error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// TransferFailedError is returned when the storage service rejects the PUT.
type TransferFailedError struct {
	Status int
	Body   string
}

func (e *TransferFailedError) Error() string {
	return fmt.Sprintf("upload failed with status %d: %s", e.Status, bodyOrPlaceholder(e.Body))
}

// TransferTimeoutError is returned when the transfer outlives its deadline.
type TransferTimeoutError struct {
	Timeout time.Duration
}

func (e *TransferTimeoutError) Error() string {
	if e.Timeout <= 0 {
		return "upload timeout"
	}

	return fmt.Sprintf("upload timeout after %s", e.Timeout)
}

// TransferAbortedError is returned when the caller aborts the transfer.
type TransferAbortedError struct {
	Err error
}

func (e *TransferAbortedError) Error() string {
	if e.Err == nil {
		return "upload was aborted"
	}

	return fmt.Sprintf("upload was aborted: %v", e.Err)
}

func (e *TransferAbortedError) Unwrap() error {
	return e.Err
}

func bodyOrPlaceholder(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "(empty body)"
	}

	return body
}
