package properties

import "errors"

var (
	ErrNotFound      = errors.New("Property not found")
	ErrOwnerNotFound = errors.New("User not found")
	ErrEmailRequired = errors.New("Email is required")
	ErrForbidden     = errors.New("Not the property owner")
	ErrInvalidClass  = errors.New("Invalid category")
)

// ValidationError reports a missing or malformed listing field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Missing required field: " + e.Field
}
