package usecase

import (
	"errors"
	"fmt"

	"movie-booking/internal/data/repository"
)

// Kind classifies a service failure; handlers map it to an HTTP status.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindReference  Kind = "reference"
	KindConflict   Kind = "conflict"
	KindExternal   Kind = "external"
	KindInternal   Kind = "internal"
)

// Error is returned by every service method. Message is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func referenceError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindReference, Message: message, Fields: fields}
}

func conflictError(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func externalError(message string, err error) *Error {
	return &Error{Kind: KindExternal, Message: message, Err: err}
}

func internalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, treating anything untyped as internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// storageError classifies a repository failure. Constraint violations that
// slipped past validation are the caller's fault; everything else is ours.
func storageError(message string, err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return conflictError(message+": already exists", err)
	case errors.Is(err, repository.ErrForeignKey):
		return &Error{Kind: KindReference, Message: message + ": referenced record does not exist", Err: err}
	case errors.Is(err, repository.ErrConstraint):
		return &Error{Kind: KindValidation, Message: message + ": required field missing or invalid", Err: err}
	case errors.Is(err, repository.ErrStatusChanged):
		return conflictError(message+": changed by another request", err)
	default:
		return internalError(message, err)
	}
}
