package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStateConflict indicates that an operation is not allowed in the resource's current lifecycle state.
var ErrStateConflict = errors.New("invalid state for operation")

// ErrTransient indicates a storage-level conflict (serialization failure, deadlock, timeout)
// that rolled back fully and is safe to retry.
var ErrTransient = errors.New("transient storage error")

// AppError wraps an underlying error with a status code and a message
// suitable for surfacing to the transport layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code, message, and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewStateConflictError creates an AppError describing a lifecycle violation,
// including the current and expected states.
func NewStateConflictError(message, current, expected string) *AppError {
	return &AppError{
		Code:    422,
		Message: fmt.Sprintf("%s: current state %s, expected %s", message, current, expected),
		Err:     ErrStateConflict,
	}
}
