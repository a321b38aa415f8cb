package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrIO                   = errors.New("storage failure")
	ErrDuplicateOrder       = errors.New("duplicate order id")
	ErrPointsAlreadyAwarded = errors.New("points already awarded for order")

	// ErrOrderStateMismatch is returned when an order exists but is not in the
	// source state a transition requires. It is a NotFound-class error.
	ErrOrderStateMismatch = fmt.Errorf("order not in required state: %w", ErrNotFound)
)

// ValidationError enumerates missing or malformed submission fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IOError wraps a record store read or write failure.
type IOError struct {
	Op  string
	Err error
}

// NewIOError wraps err unless it is nil.
func NewIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
