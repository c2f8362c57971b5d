package custom_error

import "fmt"

type CustomError interface {
	Error() string
}

// ValidationError signals a missing or malformed request field. The request is
// rejected before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError signals an unknown resource id. No side effects occurred.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
