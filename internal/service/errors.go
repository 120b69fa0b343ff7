package service

import (
	"errors"
	"fmt"
)

// ErrAllocatorBusy is returned when the reference allocator could not
// commit within the bounded retries (lock contention on the counter
// row). Callers may retry the whole request.
var ErrAllocatorBusy = errors.New("reference allocator busy, try again")

// ValidationError reports bad form input. It is surfaced to the caller
// and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
