package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure independently of the transport that
// reports it.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is the domain error type. The zero Message falls back to the code
// so an Error is never rendered empty.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError classifies an underlying error without discarding it.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common domain errors.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "user not found")
	ErrProjectNotFound    = NewError(ErrCodeNotFound, "project not found")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "task not found")
	ErrSubtaskNotFound    = NewError(ErrCodeNotFound, "subtask not found")
	ErrMessageNotFound    = NewError(ErrCodeNotFound, "message not found")
	ErrAttachmentNotFound = NewError(ErrCodeNotFound, "attachment not found")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrForbidden          = NewError(ErrCodeForbidden, "not allowed")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "invalid payload")
	ErrProjectNameEmpty   = NewError(ErrCodeInvalid, "project name must not be empty")
	ErrDuplicateMember    = NewError(ErrCodeConflict, "member already in project")
	ErrAttachmentInvalid  = NewError(ErrCodeInvalid, "invalid attachment")
	ErrNotMember          = NewError(ErrCodeForbidden, "user is not a project member")
)

// CodeOf reports the classification of err, or ErrCodeInternal when err
// carries no domain error.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}

// IsDomainError reports whether err carries the given code.
func IsDomainError(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
