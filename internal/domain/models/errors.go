package models

import "errors"

// Error kinds shared by services and the HTTP layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidID    = errors.New("invalid identifier")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error is a user-facing error message tagged with one of the error kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// ValidationError reports a malformed or missing request field.
func ValidationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// InvalidIDError reports an identifier that is not a valid object id.
func InvalidIDError(entity string) error {
	return &Error{Kind: ErrInvalidID, Message: "Invalid " + entity + " id"}
}

// NotFoundError reports a record that is absent or owned by another account.
func NotFoundError(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

// UnauthorizedError reports missing or bad credentials.
func UnauthorizedError(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// ConflictError reports a uniqueness violation.
func ConflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}
