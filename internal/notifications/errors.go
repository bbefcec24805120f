package notifications

import "errors"

var (
	ErrNotFound      = errors.New("Notification not found")
	ErrUserNotFound  = errors.New("User not found")
	ErrEmailRequired = errors.New("Email is required")
)
