package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is the machine-readable error classification carried across the
// transport boundary.
type Kind string

const (
	KindUnsupportedFormat      Kind = "unsupported_format"
	KindExtractionFailure      Kind = "extraction_failure"
	KindEmptyRequirement       Kind = "empty_requirement"
	KindExternalServiceFailure Kind = "external_service_failure"
	KindInvalidResult          Kind = "invalid_result"
	KindNotFound               Kind = "not_found"
	KindInternal               Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
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

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind wrapping a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps an error kind to the HTTP status the transport layer
// should respond with.
func StatusCode(kind Kind) int {
	switch kind {
	case KindUnsupportedFormat, KindEmptyRequirement:
		return fiber.StatusBadRequest
	case KindExtractionFailure:
		return fiber.StatusUnprocessableEntity
	case KindNotFound:
		return fiber.StatusNotFound
	case KindExternalServiceFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// UserFacing reports whether the error detail may be surfaced verbatim.
// Internal invariant violations and unexpected failures are logged and
// replaced by a generic message.
func UserFacing(kind Kind) bool {
	switch kind {
	case KindUnsupportedFormat, KindExtractionFailure, KindEmptyRequirement, KindNotFound:
		return true
	default:
		return false
	}
}
