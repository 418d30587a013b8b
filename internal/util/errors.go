// internal/util/errors.go
// Application errors and their HTTP status mapping

package util

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidPayload     = "invalid_payload"
	CodeNotFound           = "not_found"
	CodeUpstream           = "upstream"
	CodeStorageUnavailable = "storage_unavailable"
	CodeUnauthorized       = "unauthorized"
	CodeInternal           = "internal"
)

type AppError struct {
	Code    string // e.g., "invalid_payload", "not_found", "internal"
	Message string // safe to show to clients
	Err     error  // underlying cause, logged only
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	if e.Code == "" || msg == e.Code {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any AppError with the same code, so the sentinels below work
// with errors.Is regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidPayload     = &AppError{Code: CodeInvalidPayload}
	ErrNotFound           = &AppError{Code: CodeNotFound}
	ErrUpstream           = &AppError{Code: CodeUpstream}
	ErrStorageUnavailable = &AppError{Code: CodeStorageUnavailable}
	ErrUnauthorized       = &AppError{Code: CodeUnauthorized}
)

func BadInput(msg string, err error) *AppError {
	return &AppError{Code: CodeInvalidPayload, Message: msg, Err: err}
}

func NotFound(msg string) *AppError { return &AppError{Code: CodeNotFound, Message: msg} }

func Upstream(msg string, err error) *AppError {
	return &AppError{Code: CodeUpstream, Message: msg, Err: err}
}

func Storage(msg string, err error) *AppError {
	return &AppError{Code: CodeStorageUnavailable, Message: msg, Err: err}
}

func Unauthorized(msg string) *AppError { return &AppError{Code: CodeUnauthorized, Message: msg} }

func Internal(msg string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Err: err}
}

// StatusCode maps err to the HTTP status a handler should answer with.
// Anything that is not an AppError is a 500.
func StatusCode(err error) int {
	var ae *AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case CodeInvalidPayload:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text a client may see for err. Server-side
// failures (500) collapse to a generic message.
func PublicMessage(err error) string {
	var ae *AppError
	if !errors.As(err, &ae) || StatusCode(err) == http.StatusInternalServerError || ae.Message == "" {
		return "Internal server error"
	}
	return ae.Message
}
