package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors as a closed set of tagged
// kinds, dispatched structurally rather than by message text.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewAccessDenied(message string) error {
	return NewDomainError("ACCESS_DENIED", message, http.StatusForbidden)
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict)
}

// NewIllegalTransition names both statuses so the caller can see which
// move on the chain was rejected.
func NewIllegalTransition(oldStatus, newStatus string) error {
	return NewDomainError("ILLEGAL_TRANSITION",
		fmt.Sprintf("invalid status transition from %s to %s", oldStatus, newStatus),
		http.StatusBadRequest)
}

func NewIllegalAssignee(message string) error {
	return NewDomainError("ILLEGAL_ASSIGNEE", message, http.StatusBadRequest)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized
// errors become internal errors; missing rows become NOT_FOUND.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

// IsCode reports whether err carries the given DomainError code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
