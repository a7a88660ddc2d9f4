package domain

import (
	"context"
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeTypeMismatch    ErrorCode = "TYPE_MISMATCH"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
	CodeCanceled        ErrorCode = "CANCELED"
	CodeInternal        ErrorCode = "INTERNAL"
)

var (
	ErrDuplicateProject   = errors.New("project already observed")
	ErrInvalidProjectName = errors.New("invalid project name")
	ErrUnknownAttribute   = errors.New("unknown attribute key")
	ErrAttributeRedefined = errors.New("attribute already set")
	ErrAttributeType      = errors.New("attribute value has wrong type")
	ErrAlreadyCompleted   = errors.New("project already completed")
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
		}
	}
	return E(code, op, "", err)
}

// CodeFrom resolves the error code for err, mapping the package sentinels and
// context cancellation onto the taxonomy.
func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrDuplicateProject),
		errors.Is(err, ErrInvalidProjectName),
		errors.Is(err, ErrUnknownAttribute),
		errors.Is(err, ErrAttributeRedefined):
		return CodeInvalidArgument, true
	case errors.Is(err, ErrAttributeType):
		return CodeTypeMismatch, true
	case errors.Is(err, ErrAlreadyCompleted):
		return CodeInvalidState, true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled, true
	default:
		return "", false
	}
}
