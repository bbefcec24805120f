package verification

import "errors"

var (
	ErrNotFound        = errors.New("Property not found")
	ErrInvalidClass    = errors.New("Invalid property class")
	ErrInvalidStatus   = errors.New("Invalid status")
	ErrReasonRequired  = errors.New("Rejection reason is required")
	ErrAlreadyReviewed = errors.New("Property has already been reviewed")
)
